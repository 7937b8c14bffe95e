package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pulse/internal/models/request_models"
	"pulse/internal/services"
	"pulse/pkg/utils"
)

type VoteController struct {
	voteService services.VoteServiceInterface
}

func NewVoteController(voteService services.VoteServiceInterface) *VoteController {
	return &VoteController{voteService: voteService}
}

// parseWhen turns an optional RFC3339 override into an instant; empty
// means "now" and is resolved by the service.
func parseWhen(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Submit godoc
// @Summary Submit a monthly vote
// @Description Record a satisfaction vote for a project; one per user per project per calendar month
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body request_models.SubmitVoteRequest true "Vote payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /votes/submit [post]
func (v *VoteController) Submit(c *gin.Context) {
	var req request_models.SubmitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	when, ok := parseWhen(req.Now)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid timestamp, expected RFC3339")
		return
	}

	result, err := v.voteService.SubmitVote(c.Request.Context(), services.SubmitVoteInput{
		UserID:       req.UserID,
		ProjectID:    req.ProjectID,
		Satisfaction: req.Satisfaction,
		Tags:         req.Tags,
		Feedback:     req.Feedback,
		Now:          when,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Vote recorded")
}

// CarryForward godoc
// @Summary Carry last month's vote forward
// @Description Copy the caller's previous-month vote content into a fresh vote for the current month
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body request_models.CarryForwardRequest true "Carry-forward payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /votes/carry-forward [post]
func (v *VoteController) CarryForward(c *gin.Context) {
	var req request_models.CarryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	when, ok := parseWhen(req.Now)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid timestamp, expected RFC3339")
		return
	}

	result, err := v.voteService.CarryForward(c.Request.Context(), req.UserID, req.ProjectID, when)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Previous vote carried forward")
}

// Status godoc
// @Summary Voting status for the current month
// @Description Whether the user has voted this month and whether last month's vote can be carried forward
// @Tags Votes
// @Param userId query string true "User ID"
// @Param projectId query string true "Project ID"
// @Success 200 {object} utils.APIResponse
// @Router /votes/status [get]
func (v *VoteController) Status(c *gin.Context) {
	userID := c.Query("userId")
	projectID := c.Query("projectId")
	if userID == "" || projectID == "" {
		utils.RespondError(c, http.StatusBadRequest, "userId and projectId are required")
		return
	}

	status, err := v.voteService.Status(c.Request.Context(), userID, projectID, time.Time{})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Voting status fetched")
}
