package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/hideandseek/internal/repositories/archive"
)

// defaultReportLimit caps a room listing when no limit is given
const defaultReportLimit = 20

// ServeReport writes one archived report as JSON
func (h *Hub) ServeReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.archive.GetReport(r.Context(), &archive.GetReportInput{
		ReportID: r.PathValue("reportID"),
	})
	if err != nil {
		if errors.Is(err, archive.ErrReportNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Printf("failed to get report: %v", err)
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, report)
}

// ServeRoomReports lists the archived reports of a room id, newest first.
// Room ids are recycled, so the list can span several sessions.
func (h *Hub) ServeRoomReports(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultReportLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	reports, err := h.archive.ListReportsByRoom(r.Context(), &archive.ListReportsByRoomInput{
		RoomID: r.PathValue("roomID"),
		Limit:  limit,
	})
	if err != nil {
		h.logger.Printf("failed to list reports: %v", err)
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, reports)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
