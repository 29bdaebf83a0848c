package adapthttp

import (
	"net/http"

	"nutristats/internal/domain"
)

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	agg, err := s.weight.GetWeightHistory(r.Context(), userFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weightHistory": agg.Rows,
		"lastModified":  agg.LastModified,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		p, err := s.weight.GetProfile(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var body struct {
			Weight float64 `json:"weight"`
			Height float64 `json:"height"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.weight.UpdateProfile(ctx, userID, domain.Profile{Weight: body.Weight, Height: body.Height})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
