package parsing

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/schemas"
)

// decodeRecord strips wrappers from a model response, validates it against
// the named schema and decodes it into out.
func decodeRecord(raw, schemaName string, out any) error {
	body := llm.CleanJSONBlock(raw)
	if !strings.HasPrefix(body, "{") {
		if obj := llm.ExtractJSONObject(body); obj != "" {
			body = obj
		}
	}

	if !json.Valid([]byte(body)) {
		return &ParseError{Message: "response is not valid JSON"}
	}

	if err := schemas.Validate(schemaName, body); err != nil {
		field := ""
		var ve *schemas.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			field = ve.Errors[0].Field
		}
		return &ValidationError{Message: "response does not match schema", Field: field, Cause: err}
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return &ParseError{Message: "failed to decode response", Cause: err}
	}
	return nil
}
