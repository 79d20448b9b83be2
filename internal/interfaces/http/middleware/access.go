package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appaccess "github.com/sis/backend/internal/application/access"
	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/interfaces/http/dto"
)

// RequirePageAccess gates a route group behind one console page. A session
// without the registrar role gets 401 so the client bounces back to
// authentication; a registrar without the page privilege gets 403 and stays
// where it is.
func RequirePageAccess(gate *appaccess.GateService, pageID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		switch gate.Evaluate(c.Request.Context(), session, pageID) {
		case access.DecisionGranted:
			c.Next()
		case access.DecisionRedirect:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRoleMismatch, "Registrar role required", GetRequestID(c)))
		default:
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Access to this page is denied", GetRequestID(c)))
		}
	}
}
