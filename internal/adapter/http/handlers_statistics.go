package adapthttp

import "net/http"

func (s *Server) handleStatisticsSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	updated, err := s.statistics.RunSync(r.Context(), userFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updatedStatistics": updated})
}

func (s *Server) handleStatisticsDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	agg, err := s.statistics.GetDailyStatistics(r.Context(), userFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":         agg.Rows,
		"lastModified": agg.LastModified,
	})
}
