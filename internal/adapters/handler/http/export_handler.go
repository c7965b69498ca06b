package http

import (
	"encoding/json"
	"net/http"

	"github.com/shoevote/api/internal/core/ports"
)

type ExportHandler struct {
	export ports.ExportService
}

func NewExportHandler(export ports.ExportService) *ExportHandler {
	return &ExportHandler{
		export: export,
	}
}

type exportResponse struct {
	Records   interface{} `json:"records"`
	Summaries interface{} `json:"voter_summaries"`
}

// Export dumps the raw vote records plus the per-voter aggregates.
// Formatting beyond JSON belongs to the caller.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.export.Records(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summaries, err := h.export.VoterSummaries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(exportResponse{Records: records, Summaries: summaries})
}
