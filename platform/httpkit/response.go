// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"encoding/xml"
	"net/http"
	"strings"

	"leadbot_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// HandleError maps domain errors to HTTP responses.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{Error: domainErr.Message})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}

// TwiMLMessage is one outbound message in a TwiML reply.
type TwiMLMessage struct {
	Body  string
	Media string
}

// TwiML renders messages in the provider's webhook reply format:
// <Response><Message>...</Message></Response>. An empty slice renders an
// empty <Response/>, which acknowledges the event without replying.
func TwiML(c *gin.Context, messages []TwiMLMessage) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("<Response>")
	for _, msg := range messages {
		b.WriteString("<Message>")
		b.WriteString("<Body>")
		_ = xml.EscapeText(&b, []byte(msg.Body))
		b.WriteString("</Body>")
		if msg.Media != "" {
			b.WriteString("<Media>")
			_ = xml.EscapeText(&b, []byte(msg.Media))
			b.WriteString("</Media>")
		}
		b.WriteString("</Message>")
	}
	b.WriteString("</Response>")

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(b.String()))
}
