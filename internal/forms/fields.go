// Package forms binds terminal input to record fields. Fields hold a pointer
// to the value they edit and never talk to the network.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// Clear is the input that resets an optional field to empty.
const Clear = "-"

// ErrRequired is returned when a required field is cleared.
var ErrRequired = errors.New("value is required")

// Field is one labelled input.
type Field interface {
	Label() string
	// Value renders the current value.
	Value() string
	// Set parses raw input into the bound value.
	Set(raw string) error
}

// Multiline fields read several lines of input.
type Multiline interface {
	Multiline() bool
}

// TextField edits a required string.
type TextField struct {
	Name     string
	Target   *string
	Required bool
}

func (f *TextField) Label() string { return f.Name }
func (f *TextField) Value() string { return *f.Target }

func (f *TextField) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == Clear {
		raw = ""
	}
	if raw == "" && f.Required {
		return ErrRequired
	}
	*f.Target = raw
	return nil
}

// OptionalTextField edits a nullable string; cleared input stores nil.
// Lines switches to multi-line input.
type OptionalTextField struct {
	Name   string
	Target **string
	Lines  bool
}

func (f *OptionalTextField) Label() string   { return f.Name }
func (f *OptionalTextField) Multiline() bool { return f.Lines }

func (f *OptionalTextField) Value() string {
	if *f.Target == nil {
		return ""
	}
	return **f.Target
}

func (f *OptionalTextField) Set(raw string) error {
	text := strings.TrimSpace(raw)
	if f.Lines {
		text = strings.TrimRight(raw, "\n ")
	}
	if strings.TrimSpace(text) == "" || strings.TrimSpace(text) == Clear {
		*f.Target = nil
		return nil
	}
	*f.Target = &text
	return nil
}

// TextAreaField edits free text spanning several lines.
type TextAreaField struct {
	Name     string
	Target   *string
	Required bool
}

func (f *TextAreaField) Label() string   { return f.Name }
func (f *TextAreaField) Multiline() bool { return true }
func (f *TextAreaField) Value() string   { return *f.Target }

func (f *TextAreaField) Set(raw string) error {
	text := strings.TrimRight(raw, "\n ")
	if strings.TrimSpace(text) == Clear {
		text = ""
	}
	if strings.TrimSpace(text) == "" && f.Required {
		return ErrRequired
	}
	*f.Target = text
	return nil
}

// SwitchField edits a boolean.
type SwitchField struct {
	Name   string
	Target *bool
}

func (f *SwitchField) Label() string { return f.Name }

func (f *SwitchField) Value() string {
	if *f.Target {
		return "yes"
	}
	return "no"
}

func (f *SwitchField) Set(raw string) error {
	b, err := ParseSwitch(raw)
	if err != nil {
		return err
	}
	*f.Target = b
	return nil
}

// ParseSwitch accepts yes/no style answers.
func ParseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "1", "on":
		return true, nil
	case "n", "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", raw)
	}
}

// SelectField edits a nullable value restricted to Options. Input may be the
// option itself or its 1-based position.
type SelectField struct {
	Name    string
	Target  **string
	Options []string
}

func (f *SelectField) Label() string {
	return fmt.Sprintf("%s [%s]", f.Name, strings.Join(f.Options, "|"))
}

func (f *SelectField) Value() string {
	if *f.Target == nil {
		return ""
	}
	return **f.Target
}

func (f *SelectField) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Clear {
		*f.Target = nil
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(f.Options) {
		v := f.Options[n-1]
		*f.Target = &v
		return nil
	}
	for _, opt := range f.Options {
		if strings.EqualFold(opt, raw) {
			v := opt
			*f.Target = &v
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %s", raw, strings.Join(f.Options, ", "))
}

// DateField edits a nullable calendar date in YYYY-MM-DD form.
type DateField struct {
	Name   string
	Target **types.Date
}

func (f *DateField) Label() string { return f.Name + " (YYYY-MM-DD)" }

func (f *DateField) Value() string {
	if *f.Target == nil {
		return ""
	}
	return (*f.Target).String()
}

func (f *DateField) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Clear {
		*f.Target = nil
		return nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return err
	}
	*f.Target = &d
	return nil
}

// IntField edits a nullable non-negative integer.
type IntField struct {
	Name   string
	Target **int
}

func (f *IntField) Label() string { return f.Name }

func (f *IntField) Value() string {
	if *f.Target == nil {
		return ""
	}
	return strconv.Itoa(**f.Target)
}

func (f *IntField) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Clear {
		*f.Target = nil
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("expected a non-negative whole number, got %q", raw)
	}
	*f.Target = &n
	return nil
}

// FloatField edits a nullable non-negative number.
type FloatField struct {
	Name   string
	Target **float64
}

func (f *FloatField) Label() string { return f.Name }

func (f *FloatField) Value() string {
	if *f.Target == nil {
		return ""
	}
	return strconv.FormatFloat(**f.Target, 'f', -1, 64)
}

func (f *FloatField) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Clear {
		*f.Target = nil
		return nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || n < 0 {
		return fmt.Errorf("expected a non-negative number, got %q", raw)
	}
	*f.Target = &n
	return nil
}

// TagField edits a comma separated tag list.
type TagField struct {
	Name   string
	Target *[]string
}

func (f *TagField) Label() string { return f.Name + " (comma separated)" }
func (f *TagField) Value() string { return JoinTags(*f.Target) }

func (f *TagField) Set(raw string) error {
	if strings.TrimSpace(raw) == Clear {
		*f.Target = []string{}
		return nil
	}
	*f.Target = ParseTags(raw)
	return nil
}

// ParseTags splits on commas, trims and drops empty items. Order is kept.
func ParseTags(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// JoinTags renders tags as "a, b".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// JSONField edits raw structured text. The text is kept as typed; Set only
// rejects input that is not valid JSON so the caller can block the save.
type JSONField struct {
	Name   string
	Target *string
}

func (f *JSONField) Label() string   { return f.Name + " (JSON)" }
func (f *JSONField) Multiline() bool { return true }
func (f *JSONField) Value() string   { return *f.Target }

func (f *JSONField) Set(raw string) error {
	text := strings.TrimSpace(raw)
	if text == Clear {
		text = "{}"
	}
	if text != "" && !json.Valid([]byte(text)) {
		return errors.New("invalid JSON")
	}
	*f.Target = text
	return nil
}
