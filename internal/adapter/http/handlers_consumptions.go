package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"nutristats/internal/app"
	"nutristats/internal/domain"
)

type consumptionBody struct {
	Date  int64                    `json:"date"`
	Items []domain.ConsumptionItem `json:"items"`
}

func (s *Server) handleConsumptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body consumptionBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.consumptions.Log(r.Context(), userFromContext(r), body.Date, body.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleConsumptionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/consumptions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	userID := userFromContext(r)

	switch r.Method {
	case http.MethodPut:
		var body consumptionBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := s.consumptions.Update(ctx, userID, id, body.Date, body.Items)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		err := s.consumptions.Delete(ctx, userID, id)
		if errors.Is(err, app.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
