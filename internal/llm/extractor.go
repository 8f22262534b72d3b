package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a prompt asks the model to return.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string
	Type        string // type hint shown to the model, e.g. `"string"` or `["string"]`
	Description string
	Required    bool
}

// Example renders the schema as the JSON-like outline shown in prompts.
func (s ExtractionSchema) Example() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		required := ""
		if field.Required {
			required = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, required))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// JobRecordSchema is the outline for job description extraction.
func JobRecordSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobRecord",
		Description: "You are an expert recruiter. Extract the structured fields of this job description.",
		Fields: []SchemaField{
			{Name: "title", Type: `"string"`, Description: "Job title", Required: true},
			{Name: "description", Type: `"string"`, Description: "One-paragraph summary of the role"},
			{Name: "required_skills", Type: `["string"]`, Description: "Skills the posting requires, one per item", Required: true},
			{Name: "preferred_skills", Type: `["string"]`, Description: "Nice-to-have skills"},
			{Name: "experience", Type: `"string"`, Description: "Experience requirement as written, e.g. '3+ years backend development'", Required: true},
			{Name: "education", Type: `"string"`, Description: "Education requirement as written"},
			{Name: "responsibilities", Type: `["string"]`, Description: "Duties of the role, one per item", Required: true},
		},
	}
}

// CandidateRecordSchema is the outline for résumé extraction.
func CandidateRecordSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "CandidateRecord",
		Description: "You are an expert recruiter. Extract the structured fields of this résumé.",
		Fields: []SchemaField{
			{Name: "name", Type: `"string"`, Description: "Candidate full name", Required: true},
			{Name: "email", Type: `"string"`},
			{Name: "phone", Type: `"string"`},
			{Name: "skills", Type: `["string"]`, Description: "Technical and professional skills", Required: true},
			{Name: "experience", Type: `[{"title": "string", "company": "string", "duration": "string", "description": "string"}]`, Required: true},
			{Name: "education", Type: `[{"degree": "string", "institution": "string", "year": "string"}]`},
		},
	}
}
