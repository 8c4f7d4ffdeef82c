package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

const maxBodyBytes = 1 << 20

type listResponse[T any] struct {
	Data []T `json:"data"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleYears handles GET /api/vehicles/years
func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.lookup.Years(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse[int]{Data: years})
}

// handleMakes handles GET /api/vehicles/makes?year=
func (s *Server) handleMakes(w http.ResponseWriter, r *http.Request) {
	year, err := verrors.ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	makes, err := s.lookup.Makes(r.Context(), year)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse[string]{Data: makes})
}

// handleModels handles GET /api/vehicles/models?year=&make=
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := verrors.ParseYear(q.Get("year"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	makeName := q.Get("make")
	if err := verrors.ValidateMake(makeName); err != nil {
		s.fail(w, r, err)
		return
	}
	models, err := s.lookup.Models(r.Context(), year, makeName)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse[string]{Data: models})
}

// handleGetSelection handles GET /api/selections/{profile}
func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	st, err := s.store.Get(r.Context(), profile)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if st == nil {
		s.fail(w, r, verrors.New(verrors.ErrCodeNotFound, "no selection saved for %q", profile))
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// handlePutSelection handles PUT /api/selections/{profile}
func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")

	var st vehicles.VehicleState
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		s.fail(w, r, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "invalid selection body"))
		return
	}

	if err := s.store.Set(r.Context(), profile, &st); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, &st)
}

// handleDeleteSelection handles DELETE /api/selections/{profile}
func (s *Server) handleDeleteSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "profile")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail renders err as an APIError. Unexpected errors are logged and their
// details hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := vehicles.ToAPIError(err)
	status := statusFor(verrors.Code(apiErr.Code))
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		apiErr.Message = "internal server error"
	}
	respondJSON(w, status, apiErr)
}

func statusFor(code verrors.Code) int {
	switch code {
	case verrors.ErrCodeInvalidInput, verrors.ErrCodeInvalidYear,
		verrors.ErrCodeInvalidMake, verrors.ErrCodeInvalidProfile:
		return http.StatusBadRequest
	case verrors.ErrCodeNotFound:
		return http.StatusNotFound
	case verrors.ErrCodeFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, &vehicles.APIError{Message: message, Code: code})
}
