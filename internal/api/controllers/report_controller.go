package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulse/internal/services"
	"pulse/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{reportService: reportService}
}

// Summary godoc
// @Summary Monthly project summary
// @Description Vote count and average satisfaction for one calendar month
// @Tags Reports
// @Param projectId path string true "Project ID"
// @Param month query int false "Month offset, 0 = current, -1 = previous" default(0)
// @Success 200 {object} utils.APIResponse
// @Router /reports/summary/{projectId} [get]
func (r *ReportController) Summary(c *gin.Context) {
	projectID := c.Param("projectId")

	monthStr := c.DefaultQuery("month", "0")
	monthOffset, err := strconv.Atoi(monthStr)
	if err != nil || monthOffset > 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid month offset")
		return
	}

	summary, err := r.reportService.MonthlySummary(c.Request.Context(), projectID, time.Time{}, monthOffset)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Monthly summary fetched")
}

// Leaderboard godoc
// @Summary Top contributors for a project
// @Description Users ranked by total awarded points, descending
// @Tags Reports
// @Param projectId path string true "Project ID"
// @Param limit query int false "Maximum entries" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /reports/leaderboard/{projectId} [get]
func (r *ReportController) Leaderboard(c *gin.Context) {
	projectID := c.Param("projectId")

	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	entries, err := r.reportService.TopContributors(c.Request.Context(), projectID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Leaderboard fetched")
}

// ResetPoints godoc
// @Summary Reset a project's points
// @Description Delete every points award for the project; votes are untouched
// @Tags Reports
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /points/reset/{projectId} [post]
func (r *ReportController) ResetPoints(c *gin.Context) {
	projectID := c.Param("projectId")

	if err := r.reportService.ResetPoints(c.Request.Context(), projectID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Project points reset")
}
