package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDuplicateVote):
		RespondError(c, http.StatusConflict, "A vote for this project has already been recorded this month")
	case errors.Is(err, ErrUnknownTag):
		RespondError(c, http.StatusBadRequest, "Unknown topic tag")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, ErrVoteNotFound):
		RespondError(c, http.StatusNotFound, "No prior vote found")
	case errors.Is(err, ErrStorageUnavailable):
		log.Printf("Storage error: %v", err)
		RespondError(c, http.StatusServiceUnavailable, "Storage temporarily unavailable, please retry")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
