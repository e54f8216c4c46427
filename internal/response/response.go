// Package response defines the envelope every endpoint answers with.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform response body: {status, message, data}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// New builds an envelope whose status label is derived from the HTTP code.
func New(code int, message string, data any) Envelope {
	status := StatusSuccess
	if code >= http.StatusBadRequest {
		status = StatusError
	}
	return Envelope{Status: status, Message: message, Data: data}
}

// JSON writes an envelope with the given HTTP status code.
func JSON(c *gin.Context, code int, message string, data any) {
	c.JSON(code, New(code, message, data))
}

// OK writes a 200 envelope.
func OK(c *gin.Context, message string, data any) {
	JSON(c, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, message string, data any) {
	JSON(c, http.StatusCreated, message, data)
}
