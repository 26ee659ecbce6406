// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every success body carries `"success": true` plus the
// operation's payload; every failure is reduced to the uniform envelope
//
//	{ "error": "<short human-readable string>" }
//
// optionally extended with a request_id for log correlation. No internal
// error detail (stack traces, upstream payloads) is exposed to the caller;
// full detail goes to the operational log.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wardrobe-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Error is a short, human-readable description, safe to display.
	Error string `json:"error" example:"Missing imageUrl or userId"`
	// RequestID correlates server logs and client errors (when present).
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with the uniform error envelope and logs
// server-side errors (>=500) with the request-scoped logger.
func fail(c *gin.Context, status int, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, RequestID: reqID})
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
