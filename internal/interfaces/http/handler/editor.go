package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	appregistrar "github.com/sis/backend/internal/application/registrar"
	"github.com/sis/backend/internal/domain/shared"
	"github.com/sis/backend/internal/infrastructure/logger"
	"github.com/sis/backend/internal/interfaces/http/dto"
	"github.com/sis/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// IdempotencyHeaderKey carries the client-chosen key that de-duplicates a
// retried batch save
const IdempotencyHeaderKey = "Idempotency-Key"

// BatchFeeSaveRequest is the payload of a semester-scoped fee save. Edits is
// keyed by program tagging id and holds only the touched fields.
type BatchFeeSaveRequest struct {
	Curriculum string                         `json:"curriculum" binding:"required"`
	YearLevel  string                         `json:"year_level" binding:"required"`
	Semester   string                         `json:"semester" binding:"required"`
	Edits      map[int64]appregistrar.FeeEdit `json:"edits" binding:"required"`
}

// BatchPrereqSaveRequest is the payload of a semester-scoped prerequisite
// save. A present-but-empty edit clears the prerequisite.
type BatchPrereqSaveRequest struct {
	Curriculum string           `json:"curriculum" binding:"required"`
	YearLevel  string           `json:"year_level" binding:"required"`
	Semester   string           `json:"semester" binding:"required"`
	Edits      map[int64]string `json:"edits" binding:"required"`
}

// TaggingFeeUpdateRequest is the single-record fee overwrite payload
type TaggingFeeUpdateRequest struct {
	LecFee string `json:"lec_fee" binding:"required"`
	LabFee string `json:"lab_fee" binding:"required"`
}

// CoursePrereqUpdateRequest is the single-record prerequisite payload. An
// empty string clears the prerequisite.
type CoursePrereqUpdateRequest struct {
	Prereq string `json:"prereq"`
}

// EditorHandler fronts the two editing screens of the console. The fee
// routes sit behind the curriculum payment page gate and the prerequisite
// routes behind the course panel gate.
type EditorHandler struct {
	BaseHandler
	editor         *appregistrar.EditorService
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	feeGuard       gin.HandlerFunc
	prereqGuard    gin.HandlerFunc
}

// NewEditorHandler creates a new EditorHandler
func NewEditorHandler(
	editor *appregistrar.EditorService,
	idempotency shared.IdempotencyStore,
	idempotencyTTL time.Duration,
	feeGuard gin.HandlerFunc,
	prereqGuard gin.HandlerFunc,
) *EditorHandler {
	return &EditorHandler{
		editor:         editor,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		feeGuard:       feeGuard,
		prereqGuard:    prereqGuard,
	}
}

// SaveFees persists the edited fees of one semester bucket
func (h *EditorHandler) SaveFees(c *gin.Context) {
	var req BatchFeeSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if !h.claimIdempotencyKey(c) {
		return
	}

	outcome, err := h.editor.SaveSemesterFees(c.Request.Context(), req.Curriculum, req.YearLevel, req.Semester, req.Edits)
	h.respondSaveOutcome(c, outcome, err)
}

// SavePrereqs persists the edited prerequisite texts of one semester bucket
func (h *EditorHandler) SavePrereqs(c *gin.Context) {
	var req BatchPrereqSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if !h.claimIdempotencyKey(c) {
		return
	}

	outcome, err := h.editor.SaveSemesterPrereqs(c.Request.Context(), req.Curriculum, req.YearLevel, req.Semester, req.Edits)
	h.respondSaveOutcome(c, outcome, err)
}

// UpdateTaggingFees overwrites the fees of one tagged program record
func (h *EditorHandler) UpdateTaggingFees(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid program tagging id")
		return
	}

	var req TaggingFeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.editor.UpdateTaggingFees(c.Request.Context(), id, req.LecFee, req.LabFee)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appregistrar.ToTaggedCourseResponse(record))
}

// UpdateCoursePrereq overwrites the prerequisite of one course master record
func (h *EditorHandler) UpdateCoursePrereq(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid course id")
		return
	}

	var req CoursePrereqUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	course, err := h.editor.UpdateCoursePrereq(c.Request.Context(), id, req.Prereq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appregistrar.ToCourseResponse(course))
}

// claimIdempotencyKey claims the Idempotency-Key header if the client sent
// one. A key already claimed means this batch was delivered twice; the
// request is rejected before any record is touched. Store failures do not
// block the save.
func (h *EditorHandler) claimIdempotencyKey(c *gin.Context) bool {
	key := c.GetHeader(IdempotencyHeaderKey)
	if key == "" || h.idempotency == nil {
		return true
	}

	ctx := c.Request.Context()
	fresh, err := h.idempotency.MarkProcessed(ctx, key, h.idempotencyTTL)
	if err != nil {
		logger.FromContext(ctx).Warn("idempotency check failed",
			zap.String("idempotency_key", key),
			zap.Error(err),
		)
		return true
	}
	if !fresh {
		h.Conflict(c, "Duplicate batch save request")
		return false
	}
	return true
}

// respondSaveOutcome maps a batch save result onto the wire. An aborted
// batch reports the abort point alongside the error so the operator knows
// which records already landed.
func (h *EditorHandler) respondSaveOutcome(c *gin.Context, outcome appregistrar.SaveOutcome, err error) {
	if err == nil {
		h.Success(c, outcome)
		return
	}

	if outcome.FailedID != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.Response{
			Success: false,
			Data:    outcome,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeSaveAborted,
				Message:   err.Error(),
				RequestID: middleware.GetRequestID(c),
			},
		})
		return
	}

	h.HandleError(c, err)
}

// RegisterRoutes registers all editing routes
func (h *EditorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registrar := rg.Group("/registrar")

	fees := registrar.Group("")
	if h.feeGuard != nil {
		fees.Use(h.feeGuard)
	}
	{
		fees.PUT("/fees", h.SaveFees)
		fees.PUT("/program-tagging/:id/fees", h.UpdateTaggingFees)
	}

	prereqs := registrar.Group("")
	if h.prereqGuard != nil {
		prereqs.Use(h.prereqGuard)
	}
	{
		prereqs.PUT("/prereqs", h.SavePrereqs)
		prereqs.PUT("/courses/:id/prereq", h.UpdateCoursePrereq)
	}
}
