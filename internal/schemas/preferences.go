package schemas

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParsePreferences turns the raw preferences text into a compact JSON object.
// Blank text means an empty object. Text that is not valid JSON, or is valid
// JSON but not an object, is reported as a *ValidationError.
func ParsePreferences(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return json.RawMessage(`{}`), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   "team_preferences_json",
			Message: "invalid JSON: " + err.Error(),
		}}}
	}

	if err := Validate(TeamPreferences, buf.Bytes()); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			for i := range ve.Errors {
				ve.Errors[i].Field = "team_preferences_json"
			}
		}
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// FormatPreferences renders a stored preferences document for editing.
func FormatPreferences(doc json.RawMessage) string {
	if len(bytes.TrimSpace(doc)) == 0 || string(bytes.TrimSpace(doc)) == "null" {
		return "{}"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return string(doc)
	}
	return buf.String()
}
