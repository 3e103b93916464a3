package delivery

import (
	"errors"
	"log/slog"
	"net/http"

	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform envelope every endpoint returns, success or
// failure.
type apiResponse struct {
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status >= 200 && status < 400,
	})
}

// respondError is the single place where usecase errors become HTTP status
// codes. Unknown errors degrade to 500 with their detail logged, never sent.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrUserExists):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, usecase.ErrUserNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrInvalidRefreshToken):
		status, message = http.StatusUnauthorized, err.Error()
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	}

	respond(c, status, nil, message)
}
