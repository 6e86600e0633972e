package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - standard error envelope
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - error handler for gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError maps any error to an HTTP response. Non-AppError values are
// wrapped as internal errors; outside debug mode their detail is hidden.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - quick helper for gin handlers
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError tries to convert an error into *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
