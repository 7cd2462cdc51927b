package middleware

import (
	"fmt"
	"net/http"

	"fleet-optimizer/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics and emits the same error envelope the
// handlers use, so clients see one error shape regardless of the failure
// path.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		}
		switch v := recovered.(type) {
		case string:
			detail.Message = v
		case error:
			detail.Message = v.Error()
		default:
			if v != nil {
				detail.Message = fmt.Sprintf("%v", v)
			}
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: detail})
		c.Abort()
	})
}
