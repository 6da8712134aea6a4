package lessonplan

import (
	"strings"
	"text/template"
)

// systemInstruction frames the model for every completion request.
const systemInstruction = "You are an expert educational consultant specializing in creating detailed, " +
	"professional lesson plans. Generate lesson plans in HTML table format with proper structure and formatting."

// Completion parameters sent with every request.
const (
	completionMaxTokens   = 2000
	completionTemperature = 0.7
)

// LessonTableClass is the CSS class the model is asked to put on its table.
// The print stylesheet keys its borders off it.
const LessonTableClass = "lp-table"

// lessonSections are the nine sections every generated plan must cover, in order.
var lessonSections = []string{
	"Header section with school and lesson information",
	"Learning objectives",
	"Materials and resources",
	"Introduction/Warm-up activities",
	"Main activities (with timing)",
	"Assessment methods",
	"Conclusion/Plenary",
	"Homework/Extension activities",
	"Teacher reflection notes",
}

var promptTemplate = template.Must(template.New("prompt").
	Option("missingkey=zero").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`
Create a professional lesson plan in HTML table format with the following details:

School Information:
- School Name: {{.R.schoolName}}
- Teacher Name: {{.R.teacherName}}
- Term: {{.R.term}}
- Date: {{.R.date}}
- Subject: {{.R.subject}}
- Class: {{.R.className}}
- Unit No: {{.R.unitNo}}
- Lesson No: {{.R.lessonNo}}
- Duration: {{.R.duration}}
- Class Size: {{.R.classSize}}
- Special Needs: {{.SpecialNeeds}}

Lesson Details:
- Unit Title: {{.R.unitTitle}}
- Key Competence: {{.R.keyCompetence}}
- Lesson Title: {{.R.lessonTitle}}
- Instructional Objective: {{.R.instructionalObjective}}
- Location: {{.R.location}}
- Materials: {{.R.materials}}
- References: {{.R.references}}

Please create a comprehensive lesson plan with the following structure in HTML table format:
{{range $i, $s := .Sections}}
{{inc $i}}. {{$s}}{{end}}

Format the entire response as a single HTML table with class "{{.TableClass}}" and ensure it's well-structured for both screen viewing and printing. Use appropriate styling classes for different sections.

Return only the HTML table content, no additional text or explanations.
`))

type promptData struct {
	R            map[string]string
	SpecialNeeds string
	Sections     []string
	TableClass   string
}

// BuildPrompt renders the user prompt for req. Every known field is listed;
// absent optional fields render empty and special needs default to "None specified".
func BuildPrompt(req LessonRequest) string {
	data := promptData{
		R:            map[string]string{},
		SpecialNeeds: req.Get(FieldSpecialNeeds),
		Sections:     lessonSections,
		TableClass:   LessonTableClass,
	}
	for k, v := range req {
		data.R[k] = v
	}
	if data.SpecialNeeds == "" {
		data.SpecialNeeds = "None specified"
	}

	var b strings.Builder
	// The template only indexes a map and ranges a slice; Execute cannot fail.
	_ = promptTemplate.Execute(&b, data)
	return b.String()
}
