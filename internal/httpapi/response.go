package httpapi

import (
	"github.com/gin-gonic/gin"

	lessonplan "github.com/alnah/go-lessonplan"
)

// ErrorBody is the JSON shape of every non-2xx response except the
// generation fallback, which carries its own body.
type ErrorBody struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
	Details       string   `json:"details,omitempty"`
}

// LessonPlanBody is returned by the lesson-plan endpoint on both 200 and 500.
type LessonPlanBody struct {
	Success      bool   `json:"success"`
	HTML         string `json:"html"`
	UsageMetrics any    `json:"usageMetrics,omitempty"`
	ErrorDetail  string `json:"errorDetail,omitempty"`
	Message      string `json:"message"`
}

// SampleBody is returned by the test endpoint.
type SampleBody struct {
	Message      string                   `json:"message"`
	SampleData   lessonplan.LessonRequest `json:"sampleData"`
	Instructions string                   `json:"instructions"`
}

func respondError(c *gin.Context, status int, body ErrorBody) {
	c.AbortWithStatusJSON(status, body)
}
