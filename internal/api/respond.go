// Package api exposes the portfolio services over HTTP.
package api

import (
	"net/http"

	"portfolio-api/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// responder writes error responses the same way for every handler.
type responder struct {
	log   *zap.SugaredLogger
	debug bool
}

// fail maps err to its status and writes {"error": message}. Errors that
// are not an AppError are echoed as is with status 500; the admin panel
// shows these messages to the operator.
func (r responder) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	body := gin.H{}

	if appErr, ok := apperrors.As(err); ok {
		body["error"] = appErr.Message
		body["code"] = appErr.Code
		if status >= http.StatusInternalServerError && r.debug && appErr.Err != nil {
			body["detail"] = appErr.Err.Error()
		}
	} else {
		body["error"] = err.Error()
	}

	if status >= http.StatusInternalServerError {
		r.log.Errorw("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	} else {
		r.log.Debugw("request rejected", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
