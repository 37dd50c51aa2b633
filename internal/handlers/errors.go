package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LineErrorResponse describes one failing payroll line.
type LineErrorResponse struct {
	LineID  string `json:"lineID"`
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string              `json:"error"`
	Lines []LineErrorResponse `json:"lines,omitempty"`
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	if _, ok := apperrors.AsLineErrors(err); ok {
		return http.StatusUnprocessableEntity
	}
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case apperrors.IsEngineError(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr) && appErr.Code > 0:
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes it. Internal failures are reported with fallback
// instead of the underlying message.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	resp := ErrorResponse{Error: err.Error()}
	if lines, ok := apperrors.AsLineErrors(err); ok {
		for _, le := range lines {
			resp.Lines = append(resp.Lines, LineErrorResponse{LineID: le.LineID, Subject: le.Subject, Error: le.Err.Error()})
		}
	}
	c.JSON(status, resp)
}

// bindError writes a 400 for a request body or query that failed to bind.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// requireUser returns the authenticated operator ID or writes a 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
