package api

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/service"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the read-only catalog for both roles.
type WorkoutHandler struct {
	catalogService service.CatalogService
}

func NewWorkoutHandler(catalogService service.CatalogService) *WorkoutHandler {
	return &WorkoutHandler{catalogService: catalogService}
}

// --- DTOs ---

type ExerciseResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Sets         string `json:"sets"`
	Reps         string `json:"reps"`
	Rest         string `json:"rest,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Points       int    `json:"points"`
	HasMedia     bool   `json:"hasMedia"`
}

type WorkoutResponse struct {
	ID          string             `json:"id"`
	TrainerID   string             `json:"trainerId"`
	StudentID   string             `json:"studentId"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type"`
	TotalPoints int                `json:"totalPoints"`
	Exercises   []ExerciseResponse `json:"exercises"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type MediaURLResponse struct {
	URL string `json:"url"`
}

// --- Handler Methods ---

// ListWorkouts godoc
// @Summary List my workouts
// @Description Trainers get the workouts they authored, students the workouts assigned to them.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "No role selected"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	workouts, err := h.catalogService.ListWorkouts(c.Request.Context(), viewer)
	if err != nil {
		if errors.Is(err, domain.ErrMissingRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": viewer.Role.Home()})
			return
		}
		log.Printf("ERROR: Listing workouts for %s: %v", viewer.ID.Hex(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetWorkout godoc
// @Summary Get a workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout's ObjectID Hex"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid workout ID format"
// @Failure 403 {object} gin.H "Workout belongs to another user"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{workoutId} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := objectIDParam(c, "workoutId")
	if !ok {
		return
	}
	workout, err := h.catalogService.GetWorkoutFor(c.Request.Context(), viewer, workoutID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GetExerciseMedia godoc
// @Summary Get a demonstration video URL
// @Description Returns a short-lived presigned download URL for the exercise's media.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout's ObjectID Hex"
// @Param exerciseId path string true "Exercise ID within the workout"
// @Success 200 {object} MediaURLResponse
// @Failure 404 {object} gin.H "Workout, exercise or media not found"
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /workouts/{workoutId}/exercises/{exerciseId}/media [get]
func (h *WorkoutHandler) GetExerciseMedia(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := objectIDParam(c, "workoutId")
	if !ok {
		return
	}
	url, err := h.catalogService.ExerciseMediaURL(c.Request.Context(), viewer, workoutID, c.Param("exerciseId"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, MediaURLResponse{URL: url})
}

// ListStudents godoc
// @Summary Get the trainer's students
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a trainer)"
// @Router /trainer/students [get]
func (h *WorkoutHandler) ListStudents(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	students, err := h.catalogService.ListStudents(c.Request.Context(), viewer.ID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(students))
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrMediaUnavailable),
		errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStorageDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("ERROR: Catalog request %s failed: %v", c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// --- Mappers ---

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	resp := WorkoutResponse{
		ID:          w.ID.Hex(),
		TrainerID:   w.TrainerID.Hex(),
		StudentID:   w.StudentID.Hex(),
		Title:       w.Title,
		Description: w.Description,
		Type:        w.Type,
		TotalPoints: w.TotalPoints(),
		Exercises:   make([]ExerciseResponse, len(w.Exercises)),
		CreatedAt:   w.CreatedAt,
	}
	for i, ex := range w.Exercises {
		resp.Exercises[i] = ExerciseResponse{
			ID:           ex.ID,
			Name:         ex.Name,
			Sets:         ex.Sets,
			Reps:         ex.Reps,
			Rest:         ex.Rest,
			Instructions: ex.Instructions,
			Points:       ex.Points,
			HasMedia:     ex.MediaKey != "",
		}
	}
	return resp
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	out := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		out[i] = MapWorkoutToResponse(&workouts[i])
	}
	return out
}
