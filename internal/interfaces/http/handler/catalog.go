package handler

import (
	"github.com/gin-gonic/gin"
	appregistrar "github.com/sis/backend/internal/application/registrar"
)

// CatalogHandler serves the read side of the registrar console: the active
// curricula, the flat tagged-program list and the grouped course map.
type CatalogHandler struct {
	BaseHandler
	catalog *appregistrar.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *appregistrar.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListActiveCurricula returns the active curricula of the current snapshot
func (h *CatalogHandler) ListActiveCurricula(c *gin.Context) {
	curricula, err := h.catalog.ActiveCurricula(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]appregistrar.CurriculumResponse, 0, len(curricula))
	for i := range curricula {
		out = append(out, appregistrar.ToCurriculumResponse(&curricula[i]))
	}
	h.SuccessWithMeta(c, out, int64(len(out)))
}

// ListTaggedPrograms returns the flat tagged-program list
func (h *CatalogHandler) ListTaggedPrograms(c *gin.Context) {
	records, err := h.catalog.TaggedPrograms(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := appregistrar.ToTaggedCourseResponses(records)
	h.SuccessWithMeta(c, out, int64(len(out)))
}

// GetCourseMap returns the year/semester hierarchy for one curriculum. The
// path parameter is the curriculum selection as the screen holds it, which
// may be a bare numeric id.
func (h *CatalogHandler) GetCourseMap(c *gin.Context) {
	courseMap, err := h.catalog.CourseMap(c.Request.Context(), c.Param("curriculumId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appregistrar.ToCourseMapResponse(courseMap))
}

// RefreshCatalog refetches the whole baseline snapshot
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"refreshed": true})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registrar := rg.Group("/registrar")
	{
		registrar.GET("/curricula/active", h.ListActiveCurricula)
		registrar.GET("/program-tagging", h.ListTaggedPrograms)
		registrar.GET("/curricula/:curriculumId/course-map", h.GetCourseMap)
		registrar.POST("/catalog/refresh", h.RefreshCatalog)
	}
}
