package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
)

// StatblockResponse is the JSON form of one extraction. Fields keeps the
// canonical order; Record is the same data keyed by field name.
type StatblockResponse struct {
	ID     string            `json:"id"`
	Cached bool              `json:"cached"`
	Fields []statblock.Entry `json:"fields"`
	Record statblock.Record  `json:"record"`
}

// StatblockHandler extracts a stat block posted as the raw request body.
// With ?format=text it answers with the plain field report.
type StatblockHandler struct {
	processor    *batch.Processor
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewStatblockHandler(processor *batch.Processor, maxBodyBytes int64, logger *slog.Logger) *StatblockHandler {
	return &StatblockHandler{
		processor:    processor,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

func (h *StatblockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res := h.processor.Process(r.Context(), text)
	h.logger.Debug("Stat block extracted", "creature_id", res.ID, "cached", res.Cached)

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, h.logger, http.StatusOK, StatblockResponse{
			ID:     res.ID,
			Cached: res.Cached,
			Fields: statblock.Entries(res.Record),
			Record: res.Record,
		})
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(statblock.Render(res.Record))); err != nil {
			h.logger.Error("Failed to write report", "error", err)
		}
	default:
		http.Error(w, "format must be json or text", http.StatusBadRequest)
	}
}
