package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/logger"
)

// LessonGenerator produces lesson-plan HTML; it never fails outright.
type LessonGenerator interface {
	Generate(ctx context.Context, req lessonplan.LessonRequest) lessonplan.GenerationResult
}

// PDFRenderer prints HTML to PDF.
type PDFRenderer interface {
	Render(ctx context.Context, html string, opts lessonplan.RenderOptions) lessonplan.RenderResult
}

// Compile-time interface checks
var (
	_ LessonGenerator = (*lessonplan.Generator)(nil)
	_ PDFRenderer     = (*lessonplan.Renderer)(nil)
)

// pdfRequest is the body of POST /generate/pdf.
type pdfRequest struct {
	HTML       string         `json:"html"`
	LessonData map[string]any `json:"lessonData"`
	PageFormat string         `json:"pageFormat"`
}

// Handler serves the generate endpoints.
type Handler struct {
	gen        LessonGenerator
	renderer   PDFRenderer
	pageFormat string
	log        *logger.Logger
}

// NewHandler creates a Handler. pageFormat is used when a PDF request names none.
func NewHandler(gen LessonGenerator, renderer PDFRenderer, pageFormat string, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{gen: gen, renderer: renderer, pageFormat: pageFormat, log: log}
}

// LessonPlan handles POST /generate/lesson-plan.
func (h *Handler) LessonPlan(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:   "Invalid JSON body",
			Message: err.Error(),
		})
		return
	}

	req, err := lessonplan.RequestFromValues(values)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:   "Invalid lesson plan data",
			Message: err.Error(),
		})
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:         "Missing required fields",
			MissingFields: missing,
			Message:       "Please provide all required lesson plan information",
		})
		return
	}

	h.log.Info("generating lesson plan", "lesson_title", req.Get(lessonplan.FieldLessonTitle))
	res := h.gen.Generate(c.Request.Context(), req)

	if res.Success {
		c.JSON(http.StatusOK, LessonPlanBody{
			Success:      true,
			HTML:         res.HTML,
			UsageMetrics: res.Usage,
			Message:      "Lesson plan generated successfully",
		})
		return
	}

	h.log.Warn("lesson plan generation failed, using fallback", "error_detail", res.ErrorDetail)
	c.JSON(http.StatusInternalServerError, LessonPlanBody{
		Success:     false,
		HTML:        res.HTML,
		ErrorDetail: res.ErrorDetail,
		Message:     "Lesson plan generation failed, using fallback template",
	})
}

// PDF handles POST /generate/pdf.
func (h *Handler) PDF(c *gin.Context) {
	var body pdfRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:   "Invalid JSON body",
			Message: err.Error(),
		})
		return
	}
	if body.HTML == "" {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:   "Missing HTML content",
			Message: "Please provide HTML content to convert to PDF",
		})
		return
	}

	format := body.PageFormat
	if format == "" {
		format = h.pageFormat
	}
	if !lessonplan.IsValidPageFormat(format) {
		respondError(c, http.StatusBadRequest, ErrorBody{
			Error:   "Invalid page format",
			Message: "Supported formats: Letter, Legal, Tabloid, Ledger, A3, A4, A5",
		})
		return
	}

	res := h.renderer.Render(c.Request.Context(), body.HTML, lessonplan.RenderOptions{PageFormat: format})
	if !res.Success {
		h.log.Error("pdf generation failed", "error_detail", res.ErrorDetail)
		respondError(c, http.StatusInternalServerError, ErrorBody{
			Error:   "PDF generation failed",
			Message: "Failed to generate PDF document",
			Details: res.ErrorDetail,
		})
		return
	}

	filename := lessonplan.PDFFilename(body.LessonData)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(res.PDF)))
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}

// Sample handles GET /generate/test.
func (h *Handler) Sample(c *gin.Context) {
	c.JSON(http.StatusOK, SampleBody{
		Message:      "Test endpoint working",
		SampleData:   lessonplan.SampleRequest(),
		Instructions: "Use this sample data to test the lesson plan generation",
	})
}
