package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape the storefront client expects: success flag plus
// either a human message or an error string.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func RespondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, Envelope{Success: false, Error: msg})
}
