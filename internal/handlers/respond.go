package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/pkg/apperr"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
)

// respondError maps service errors to HTTP at the boundary. Typed app errors
// carry their own status and kind; anything else is a 500.
func respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.JSON(apperr.HTTPStatus(ae), gin.H{
			"error": ae.Message,
			"kind":  ae.Kind,
		})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled handler error")
	c.JSON(500, gin.H{"error": "Internal server error"})
}
