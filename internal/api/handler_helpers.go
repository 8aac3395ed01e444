package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleServiceError maps the error taxonomy onto HTTP statuses: 400 for
// user-correctable validation, 404 for missing ids, 500 for store
// failures (the only ones a client should retry).
func HandleServiceError(c *gin.Context, logger internal.Logger, err error, msg string) {
	var validationErr *internal.ValidationError
	switch {
	case errors.As(err, &validationErr):
		HandleError(c, logger, err, 400, msg)
	case errors.Is(err, internal.ErrNotFound):
		HandleError(c, logger, err, 404, msg)
	default:
		HandleError(c, logger, err, 500, msg)
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}
