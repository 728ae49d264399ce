package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	rep := s.report()
	if rep == nil {
		jsonError(w, "index not built yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":     len(rep.Documents),
		"documents": rep.Documents,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rep := s.report()
	if rep == nil {
		jsonError(w, "index not built yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(rep.Rendered)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rep := s.report()
	resp := map[string]any{
		"stats": s.stats.Snapshot(),
	}
	if rep != nil {
		resp["root"] = rep.Root
		resp["out"] = rep.Out
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Rebuild(r.Context())
	if err != nil {
		s.log.Error("rebuild failed", "error", err)
		jsonError(w, "rebuild failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":      rep.RunID,
		"scanned":     rep.Scanned,
		"documents":   len(rep.Documents),
		"skipped":     len(rep.Skips),
		"duration_ms": rep.Duration.Milliseconds(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
