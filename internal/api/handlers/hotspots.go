package handlers

import (
	"net/http"

	"geo-intel-service/internal/api/dto"
	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
	"geo-intel-service/internal/services"
)

// Upper bound on events pulled from the stream per analysis request.
const maxStreamedRecords = 10000

type HotspotHandler struct {
	Analyzer *services.HotspotAnalyzer
	// History is optional; without it only request-body batches work.
	History ports.DeliveryHistorySource
}

// Analyze clusters delivery history into hotspots. The batch comes from the
// request body, or from the delivery-event stream when use_event_stream is
// set.
func (h *HotspotHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeHotspotsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch domain.Timeframe(req.Timeframe) {
	case domain.TimeframeDaily, domain.TimeframeWeekly, domain.TimeframeMonthly, domain.TimeframeCustom:
	default:
		writeError(w, r, http.StatusBadRequest, "timeframe must be one of daily, weekly, monthly, custom")
		return
	}

	history := req.History
	if req.UseEventStream {
		if h.History == nil {
			writeError(w, r, http.StatusBadRequest, "event stream source is not configured")
			return
		}
		var err error
		history, err = h.History.ReadBatch(r.Context(), maxStreamedRecords)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
	}
	if len(history) == 0 {
		writeJSON(w, r, http.StatusOK, dto.AnalyzeHotspotsResponse{Clusters: []domain.Cluster{}})
		return
	}

	clusters, err := h.Analyzer.AnalyzeDeliveryHotspots(r.Context(), history, domain.Timeframe(req.Timeframe))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AnalyzeHotspotsResponse{Clusters: clusters})
}
