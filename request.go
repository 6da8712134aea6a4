package lessonplan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Lesson form field names.
const (
	FieldSchoolName             = "schoolName"
	FieldTeacherName            = "teacherName"
	FieldTerm                   = "term"
	FieldDate                   = "date"
	FieldSubject                = "subject"
	FieldClassName              = "className"
	FieldUnitNo                 = "unitNo"
	FieldLessonNo               = "lessonNo"
	FieldDuration               = "duration"
	FieldClassSize              = "classSize"
	FieldSpecialNeeds           = "specialNeeds"
	FieldUnitTitle              = "unitTitle"
	FieldKeyCompetence          = "keyCompetence"
	FieldLessonTitle            = "lessonTitle"
	FieldInstructionalObjective = "instructionalObjective"
	FieldLocation               = "location"
	FieldMaterials              = "materials"
	FieldReferences             = "references"
)

// RequiredFields lists the fields every lesson request must carry, in report order.
var RequiredFields = []string{
	FieldSchoolName,
	FieldTeacherName,
	FieldSubject,
	FieldClassName,
	FieldUnitTitle,
	FieldLessonTitle,
	FieldInstructionalObjective,
}

// LessonRequest is the flat set of form fields describing one lesson plan.
type LessonRequest map[string]string

// Get returns the value for key, or "" when absent.
func (r LessonRequest) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// MissingFields returns the required fields that are absent or empty,
// in RequiredFields order. Returns nil when nothing is missing.
func (r LessonRequest) MissingFields() []string {
	var missing []string
	for _, f := range RequiredFields {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate returns a *ValidationError when required fields are missing.
func (r LessonRequest) Validate() error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// RequestFromValues builds a LessonRequest from decoded JSON values.
// Strings are kept as-is, numbers and true are stringified, null and false are dropped.
// Nested objects and arrays are rejected.
func RequestFromValues(values map[string]any) (LessonRequest, error) {
	req := make(LessonRequest, len(values))
	for k, v := range values {
		s, ok, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		if ok {
			req[k] = s
		}
	}
	return req, nil
}

func scalarString(v any) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, true, nil
	case bool:
		if !val {
			return "", false, nil
		}
		return "true", true, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	case json.Number:
		return val.String(), true, nil
	case int:
		return strconv.Itoa(val), true, nil
	default:
		return "", false, fmt.Errorf("unsupported value type %T", v)
	}
}

// PDFFilename returns the download name for a rendered lesson plan.
// Missing subject or date fall back to the literal placeholders "subject" and "date".
func PDFFilename(lessonData map[string]any) string {
	subject := filenamePart(lessonData, FieldSubject)
	date := filenamePart(lessonData, FieldDate)
	return "lesson-plan-" + subject + "-" + date + ".pdf"
}

// filenamePart stringifies a lesson field for use inside a quoted
// Content-Disposition filename.
func filenamePart(data map[string]any, key string) string {
	s, ok, err := scalarString(data[key])
	if err != nil || !ok || s == "" {
		return key
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

// SampleRequest returns the fixed lesson used by the test endpoint.
func SampleRequest() LessonRequest {
	return LessonRequest{
		FieldSchoolName:             "Springfield Elementary School",
		FieldTeacherName:            "John Smith",
		FieldTerm:                   "Fall 2024",
		FieldDate:                   "2024-01-15",
		FieldSubject:                "Mathematics",
		FieldClassName:              "Grade 5A",
		FieldUnitNo:                 "3",
		FieldLessonNo:               "2",
		FieldDuration:               "45 minutes",
		FieldClassSize:              "25 students",
		FieldSpecialNeeds:           "2 students with learning disabilities",
		FieldUnitTitle:              "Fractions and Decimals",
		FieldKeyCompetence:          "Problem-solving and critical thinking",
		FieldLessonTitle:            "Understanding Equivalent Fractions",
		FieldInstructionalObjective: "Students will be able to identify and create equivalent fractions",
		FieldLocation:               "Classroom 101",
		FieldMaterials:              "Fraction bars, worksheets, whiteboard",
		FieldReferences:             "Math textbook pages 45-50",
	}
}
