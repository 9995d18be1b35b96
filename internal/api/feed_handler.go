package api

import (
	"alcyxob/training-coach/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler serves the community feed.
type FeedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// CreatePostRequest is the body of a new feed post. Performance is only kept
// when a workout is linked.
type CreatePostRequest struct {
	Content     string `json:"content" binding:"required"`
	WorkoutID   string `json:"workoutId,omitempty"`
	Performance string `json:"performance,omitempty"`
}

// ListPosts godoc
// @Summary List the community feed
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.PostView
// @Router /feed [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	posts, err := h.feedService.List(c.Request.Context(), viewer)
	if err != nil {
		log.Printf("ERROR: Listing feed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve feed.")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Publish a post
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post content"
// @Success 201 {object} service.PostResult
// @Failure 400 {object} gin.H "Empty or too long content"
// @Failure 403 {object} gin.H "Linked workout belongs to another user"
// @Failure 404 {object} gin.H "Linked workout not found"
// @Router /feed [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in := service.NewPost{Content: req.Content, Performance: req.Performance}
	if req.WorkoutID != "" {
		workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid workoutId format.")
			return
		}
		in.WorkoutID = &workoutID
	}

	res, err := h.feedService.Publish(c.Request.Context(), viewer, in)
	if err != nil {
		h.respondFeedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ToggleLike godoc
// @Summary Like a post, or take the like back
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post's ObjectID Hex"
// @Success 200 {object} service.PostResult
// @Failure 404 {object} gin.H "Post not found"
// @Router /feed/{postId}/like [post]
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}
	res, err := h.feedService.ToggleLike(c.Request.Context(), viewer, postID)
	if err != nil {
		h.respondFeedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SharePost godoc
// @Summary Get a shareable link to a post
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post's ObjectID Hex"
// @Success 200 {object} service.ShareResult
// @Failure 404 {object} gin.H "Post not found"
// @Router /feed/{postId}/share [post]
func (h *FeedHandler) SharePost(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}
	res, err := h.feedService.Share(c.Request.Context(), viewer, postID)
	if err != nil {
		h.respondFeedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FeedHandler) respondFeedError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPost), errors.Is(err, service.ErrPostTooLong):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("ERROR: Feed request failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
