package api

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/service"
	"alcyxob/training-coach/internal/session"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextUserKey holds the *domain.User built from the verified token.
const ContextUserKey = "currentUser"

// AuthMiddleware verifies the bearer token and puts the caller in the context.
// Requests without a valid token are told to go to the login view.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortToLogin(c, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortToLogin(c, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := authService.ParseToken(parts[1])
		if err != nil {
			abortToLogin(c, err.Error())
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortToLogin(c, "Invalid user ID format in token")
			return
		}

		c.Set(ContextUserKey, &domain.User{
			ID:    userID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		})
		c.Next()
	}
}

// RoleMiddleware runs the route guard for views that require a role.
// Must run AFTER AuthMiddleware.
func RoleMiddleware(required domain.Role) gin.HandlerFunc {
	return guardMiddleware(func(user *domain.User) session.Decision {
		return session.Guard(user, required)
	})
}

// AnyRoleMiddleware guards views open to both roles. Must run AFTER AuthMiddleware.
func AnyRoleMiddleware() gin.HandlerFunc {
	return guardMiddleware(session.GuardAnyRole)
}

func guardMiddleware(guard func(*domain.User) session.Decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		decision := guard(user)
		switch decision.Outcome {
		case session.Allow:
			c.Next()
		case session.RedirectToLogin:
			abortToLogin(c, "Authentication required")
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        decision.Notice.Description,
				"notification": decision.Notice,
				"redirect":     decision.Location,
			})
		}
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func abortToLogin(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "redirect": session.LoginPath})
}

// currentUser returns the caller placed in the context by AuthMiddleware.
func currentUser(c *gin.Context) (*domain.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	user, ok := raw.(*domain.User)
	if !ok || user == nil {
		return nil, errors.New("invalid user type in context")
	}
	return user, nil
}

func viewerFromContext(c *gin.Context) (service.Viewer, bool) {
	user, err := currentUser(c)
	if err != nil {
		abortToLogin(c, "Unable to identify user from token.")
		return service.Viewer{}, false
	}
	return service.Viewer{ID: user.ID, Role: user.Role}, true
}

// objectIDParam parses a hex ObjectID path parameter, replying 400 on failure.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
