//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Defaults of an hh.ru import request.
const (
	DefaultImportPerPage    = 20
	DefaultImportPagesLimit = 3
)

// HHImportRequest starts an import of vacancies from hh.ru.
type HHImportRequest struct {
	Text         string         `json:"text" validate:"required,min=1,max=255"`
	Area         *int           `json:"area,omitempty"`
	Schedule     *string        `json:"schedule,omitempty" validate:"omitempty,max=50"`
	Experience   *string        `json:"experience,omitempty" validate:"omitempty,max=50"`
	SalaryFrom   *int           `json:"salary_from,omitempty" validate:"omitempty,gte=0"`
	SalaryTo     *int           `json:"salary_to,omitempty" validate:"omitempty,gte=0"`
	Currency     *string        `json:"currency,omitempty" validate:"omitempty,max=10"`
	PerPage      int            `json:"per_page" validate:"min=1,max=100"`
	PagesLimit   int            `json:"pages_limit" validate:"min=1,max=20"`
	FetchDetails bool           `json:"fetch_details"`
	ExtraParams  map[string]any `json:"extra_params,omitempty"`
}

// NewHHImportRequest returns a request with the backend's defaults.
func NewHHImportRequest(text string) HHImportRequest {
	return HHImportRequest{
		Text:         text,
		PerPage:      DefaultImportPerPage,
		PagesLimit:   DefaultImportPagesLimit,
		FetchDetails: true,
	}
}

// Validate validates the HHImportRequest using the validator.
func (r *HHImportRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	for key, value := range r.ExtraParams {
		if !allowedExtraParam(value) {
			return fmt.Errorf("extra_params[%s]: only string, integer, boolean, list of strings/integers or null are allowed", key)
		}
	}
	return nil
}

func allowedExtraParam(value any) bool {
	switch v := value.(type) {
	case nil, string, bool, int, int64:
		return true
	case float64:
		return v == float64(int64(v))
	case []string, []int:
		return true
	case []any:
		for _, item := range v {
			switch n := item.(type) {
			case string, int, int64:
			case float64:
				if n != float64(int64(n)) {
					return false
				}
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}
