package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the single wire format for every endpoint: {success, data?,
// message?, count?}. List endpoints set count; errors set message only.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
	})
}

// SuccessList mirrors Success for collections, adding the item count.
func SuccessList(c *gin.Context, status int, data any, count int) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// SuccessMessage is used where the client shows a confirmation line alongside
// the updated entity (e.g. a confirmed shift swap).
func SuccessMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}
