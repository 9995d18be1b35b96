package api

import (
	"alcyxob/training-coach/internal/guided"
	"alcyxob/training-coach/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrainingHandler exposes the student's guided session and progress card.
type TrainingHandler struct {
	trainingService service.TrainingService
	progressService service.ProgressService
}

func NewTrainingHandler(trainingService service.TrainingService, progressService service.ProgressService) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
		progressService: progressService,
	}
}

type GoToRequest struct {
	Index *int `json:"index" binding:"required"`
}

// StartSession godoc
// @Summary Start or restart a guided session
// @Description Opens training mode on an assigned workout. Starting the workout of a stopped run resumes it; a completed run restarts from zero.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout's ObjectID Hex"
// @Success 200 {object} service.TrainingResult
// @Failure 403 {object} gin.H "Workout not assigned to this student"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 409 {object} gin.H "Training mode already active"
// @Router /student/workouts/{workoutId}/session [post]
func (h *TrainingHandler) StartSession(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := objectIDParam(c, "workoutId")
	if !ok {
		return
	}
	res, err := h.trainingService.Start(c.Request.Context(), viewer.ID, workoutID)
	if err != nil {
		respondTrainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetSession godoc
// @Summary Get my guided session
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TrainingResult
// @Failure 404 {object} gin.H "No guided session"
// @Router /student/session [get]
func (h *TrainingHandler) GetSession(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	res, err := h.trainingService.Current(c.Request.Context(), viewer.ID)
	if err != nil {
		respondTrainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CompleteExercise godoc
// @Summary Complete an exercise
// @Description Marks the exercise done, awards its points and advances. Completing an exercise twice changes nothing and answers with noop set.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID within the workout"
// @Success 200 {object} service.TrainingResult
// @Failure 404 {object} gin.H "No guided session or unknown exercise"
// @Failure 409 {object} gin.H "Exercise is locked or training mode is off"
// @Router /student/session/exercises/{exerciseId}/complete [post]
func (h *TrainingHandler) CompleteExercise(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	res, err := h.trainingService.Complete(c.Request.Context(), viewer.ID, c.Param("exerciseId"))
	if err != nil {
		respondTrainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GoTo godoc
// @Summary Navigate to a reached exercise
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GoToRequest true "Target index"
// @Success 200 {object} service.TrainingResult
// @Failure 400 {object} gin.H "Index not reached"
// @Router /student/session/goto [post]
func (h *TrainingHandler) GoTo(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	var req GoToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	res, err := h.trainingService.GoTo(c.Request.Context(), viewer.ID, *req.Index)
	if err != nil {
		respondTrainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// StopSession godoc
// @Summary Leave training mode
// @Description Progress and points are kept.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TrainingResult
// @Router /student/session/stop [post]
func (h *TrainingHandler) StopSession(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	res, err := h.trainingService.Stop(c.Request.Context(), viewer.ID)
	if err != nil {
		respondTrainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DiscardSession godoc
// @Summary Discard my guided session
// @Tags Student
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} gin.H "No guided session"
// @Router /student/session [delete]
func (h *TrainingHandler) DiscardSession(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	if err := h.trainingService.Discard(c.Request.Context(), viewer.ID); err != nil {
		respondTrainingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetStats godoc
// @Summary Get my gamification card
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PlayerStats
// @Router /student/stats [get]
func (h *TrainingHandler) GetStats(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	stats, err := h.progressService.Stats(c.Request.Context(), viewer.ID)
	if err != nil {
		log.Printf("ERROR: Computing stats for %s: %v", viewer.ID.Hex(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func respondTrainingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, guided.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutNotAssigned):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, guided.ErrGatingViolation),
		errors.Is(err, guided.ErrNotTraining),
		errors.Is(err, guided.ErrAlreadyTraining),
		errors.Is(err, service.ErrOtherWorkoutActive):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, guided.ErrIndexNotReached):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, guided.ErrEmptyWorkout),
		errors.Is(err, guided.ErrInvalidPoints),
		errors.Is(err, guided.ErrDuplicateExercise):
		log.Printf("ERROR: Workout cannot be trained: %v", err)
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("ERROR: Training request %s failed: %v", c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
