package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appaccess "github.com/sis/backend/internal/application/access"
	"github.com/sis/backend/internal/interfaces/http/dto"
	"github.com/sis/backend/internal/interfaces/http/middleware"
)

// AccessHandler serves the page privilege probes the console fires while a
// gated screen is loading
type AccessHandler struct {
	BaseHandler
	gate *appaccess.GateService
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(gate *appaccess.GateService) *AccessHandler {
	return &AccessHandler{gate: gate}
}

// PrivilegeResponse is the raw privilege flag of one employee/page pair
type PrivilegeResponse struct {
	EmployeeID    string `json:"employee_id"`
	PageID        int    `json:"page_id"`
	PagePrivilege int    `json:"page_privilege"`
}

// DecisionResponse is the evaluated gate outcome for the calling session
type DecisionResponse struct {
	PageID   int    `json:"page_id"`
	Decision string `json:"decision"`
}

// GetPagePrivilege returns the privilege flag for an employee/page pair.
// A missing row reads as zero, not as an error.
func (h *AccessHandler) GetPagePrivilege(c *gin.Context) {
	employeeID := c.Param("employeeId")
	pageID, err := strconv.Atoi(c.Param("pageId"))
	if err != nil {
		h.BadRequest(c, "Invalid page id")
		return
	}

	privilege, err := h.gate.Privilege(c.Request.Context(), employeeID, pageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PrivilegeResponse{
		EmployeeID:    employeeID,
		PageID:        pageID,
		PagePrivilege: privilege,
	})
}

// EvaluatePage evaluates the calling session against one page and reports
// the decision without enforcing it
func (h *AccessHandler) EvaluatePage(c *gin.Context) {
	pageID, err := strconv.Atoi(c.Param("pageId"))
	if err != nil {
		h.BadRequest(c, "Invalid page id")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	decision := h.gate.Evaluate(c.Request.Context(), session, pageID)
	h.Success(c, DecisionResponse{
		PageID:   pageID,
		Decision: decision.String(),
	})
}

// RegisterRoutes registers all access probe routes
func (h *AccessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	access := rg.Group("/access")
	{
		access.GET("/page-access/:employeeId/:pageId", h.GetPagePrivilege)
		access.GET("/pages/:pageId/decision", h.EvaluatePage)
	}
}
