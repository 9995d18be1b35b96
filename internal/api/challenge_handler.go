package api

import (
	"alcyxob/training-coach/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// ListChallenges godoc
// @Summary List community challenges
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ChallengeView
// @Router /challenges [get]
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	views, err := h.challengeService.List(c.Request.Context(), viewer.ID)
	if err != nil {
		log.Printf("ERROR: Listing challenges: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve challenges.")
		return
	}
	c.JSON(http.StatusOK, views)
}

// JoinChallenge godoc
// @Summary Join a challenge
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Param challengeId path string true "Challenge's ObjectID Hex"
// @Success 200 {object} service.JoinResult
// @Failure 404 {object} gin.H "Challenge not found"
// @Failure 409 {object} gin.H "Already joined or challenge ended"
// @Router /challenges/{challengeId}/join [post]
func (h *ChallengeHandler) JoinChallenge(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return
	}
	challengeID, ok := objectIDParam(c, "challengeId")
	if !ok {
		return
	}
	res, err := h.challengeService.Join(c.Request.Context(), viewer.ID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyJoined), errors.Is(err, service.ErrChallengeClosed):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: Joining challenge %s: %v", challengeID.Hex(), err)
			abortWithError(c, http.StatusInternalServerError, "Failed to join challenge.")
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
