package handler

import (
	"github.com/gin-gonic/gin"
	appadmission "github.com/sis/backend/internal/application/admission"
)

// AdmissionHandler serves the exam permit applicant lookup
type AdmissionHandler struct {
	BaseHandler
	lookup *appadmission.LookupService
}

// NewAdmissionHandler creates a new AdmissionHandler
func NewAdmissionHandler(lookup *appadmission.LookupService) *AdmissionHandler {
	return &AdmissionHandler{lookup: lookup}
}

// GetPersonByApplicantNumber resolves an applicant number, typed or scanned
// from a QR code, to the person behind it
func (h *AdmissionHandler) GetPersonByApplicantNumber(c *gin.Context) {
	permit, err := h.lookup.LookupByApplicantNumber(c.Request.Context(), c.Param("applicantNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, permit)
}

// RegisterRoutes registers all admission routes
func (h *AdmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admission := rg.Group("/admission")
	{
		admission.GET("/person-by-applicant/:applicantNumber", h.GetPersonByApplicantNumber)
	}
}
