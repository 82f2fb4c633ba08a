package middleware

import (
	"net/http"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
)

const msgAdminOnly = "Acesso restrito a administradores"

// AdminOnly lets administrators through. Pages are sent back to the
// dashboard with a message; JSON clients get {success:false, error} with
// status 200, like any other failed action.
// It must run after SessionAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user != nil && user.IsAdmin {
			c.Next()
			return
		}

		_ = c.Error(service.ErrPermissionDenied)
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"success": false, "error": msgAdminOnly})
			return
		}
		flash.Add(c, flash.Error, msgAdminOnly)
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
	}
}
