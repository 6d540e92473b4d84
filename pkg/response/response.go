// Package response writes the API's JSON envelope. Every payload carries
// an "ok" flag; failures carry a client-safe "error" string and take
// their HTTP status from the error taxonomy.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zintasa/backend/pkg/apperr"
)

// OK writes a 200 response merging payload into {"ok": true}.
func OK(c *gin.Context, payload gin.H) {
	write(c, http.StatusOK, payload)
}

// Created writes a 201 response merging payload into {"ok": true}.
func Created(c *gin.Context, payload gin.H) {
	write(c, http.StatusCreated, payload)
}

func write(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes {"ok": false, "error": ...} with the status mapped from
// err's kind. Unclassified errors surface as a generic 500.
func Fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"ok":    false,
		"error": apperr.ClientMessage(err),
	})
}

// FailStatus writes a failure envelope at an explicit status. Used by
// middleware for statuses outside the error taxonomy.
func FailStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"ok":    false,
		"error": message,
	})
}
