package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	app "kaviospix/src/app"
)

// Every response carries success plus either a payload or a message.
// Error kinds map onto statuses here and nowhere else; anything
// unrecognized is reported generically and logged with full detail.
func respondError(c *gin.Context, err error) {
	var partial *app.PartialFailureError
	switch {
	case errors.Is(err, app.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, app.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, app.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, app.ErrUpstream):
		log.Errorf("upstream failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "upstream storage failure"})
	case errors.As(err, &partial):
		log.Errorf("partial cascade failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": partial.Error()})
	default:
		log.Errorf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// publicUser is the user shape returned by auth endpoints.
func publicUser(user *app.User) gin.H {
	return gin.H{
		"userId":        user.UserID,
		"email":         user.Email,
		"name":          user.Name,
		"avatar":        user.Avatar,
		"emailVerified": user.EmailVerified,
	}
}
