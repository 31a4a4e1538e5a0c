package respond

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 JSON response for a newly stored record.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Message writes a 200 response carrying only a human-readable message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// PDF writes a PDF document with an exact Content-Length. When filename is
// set the document is offered as an attachment.
func PDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Data(http.StatusOK, "application/pdf", body)
}
