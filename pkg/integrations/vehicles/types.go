package vehicles

import (
	"errors"
	"strconv"
	"strings"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
)

// VehicleState is the selection state of a year/make/model picker.
//
// Years is ordered most recent first, Makes and Models ascending. The three
// selections are independent nullable fields; nothing in the type keeps them
// consistent with the lists (SelectedMake may be set while Makes is empty).
// The lookup [Client] never builds or mutates a VehicleState; it is owned by
// whatever UI consumes the client.
type VehicleState struct {
	Years         []int    `json:"years" bson:"years"`
	Makes         []string `json:"makes" bson:"makes"`
	Models        []string `json:"models" bson:"models"`
	SelectedYear  *int     `json:"selectedYear" bson:"selected_year"`
	SelectedMake  *string  `json:"selectedMake" bson:"selected_make"`
	SelectedModel *string  `json:"selectedModel" bson:"selected_model"`
}

// SelectYear sets the year and clears everything that depends on it.
func (s *VehicleState) SelectYear(year int) {
	s.SelectedYear = &year
	s.Makes = nil
	s.SelectedMake = nil
	s.Models = nil
	s.SelectedModel = nil
}

// SelectMake sets the make and clears the model list and selection.
func (s *VehicleState) SelectMake(name string) {
	s.SelectedMake = &name
	s.Models = nil
	s.SelectedModel = nil
}

// SelectModel sets the model.
func (s *VehicleState) SelectModel(model string) {
	s.SelectedModel = &model
}

// Complete reports whether year, make and model are all selected.
func (s *VehicleState) Complete() bool {
	return s.SelectedYear != nil && s.SelectedMake != nil && s.SelectedModel != nil
}

// Summary renders the selections as "2020 Toyota Camry", skipping unset ones.
func (s *VehicleState) Summary() string {
	var parts []string
	if s.SelectedYear != nil {
		parts = append(parts, strconv.Itoa(*s.SelectedYear))
	}
	if s.SelectedMake != nil {
		parts = append(parts, *s.SelectedMake)
	}
	if s.SelectedModel != nil {
		parts = append(parts, *s.SelectedModel)
	}
	return strings.Join(parts, " ")
}

// APIError is the normalized error result presented to callers of the
// CLI and the JSON server.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// ToAPIError normalizes err for presentation.
//
// A [FetchError] keeps its fixed message with code FETCH_FAILED. Coded errors
// from [verrors] keep their code and user message. Anything else becomes
// INTERNAL_ERROR. Returns nil for a nil error.
func ToAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return &APIError{Message: fe.Error(), Code: string(fe.Code())}
	}
	code := verrors.GetCode(err)
	if code == "" {
		code = verrors.ErrCodeInternal
	}
	return &APIError{Message: verrors.UserMessage(err), Code: string(code)}
}
