package handler

import "net/http"

type dashboardResponse struct {
	Success   bool           `json:"success"`
	Families  int64          `json:"families"`
	Members   int64          `json:"members"`
	States    int64          `json:"states"`
	Cities    int64          `json:"cities"`
	TopStates []topStateView `json:"topStates"`
}

type topStateView struct {
	StateName string `json:"stateName"`
	Total     int64  `json:"total"`
}

// Dashboard aggregates the landing-page counters and the top-states chart.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	familyCounts, err := h.Families.Counts(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	locationCounts, err := h.Locations.Counts(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	topStates, err := h.Families.TopStates(r.Context(), 5)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]topStateView, 0, len(topStates))
	for _, row := range topStates {
		views = append(views, topStateView{StateName: row.StateName, Total: row.Total})
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Success:   true,
		Families:  familyCounts.Heads,
		Members:   familyCounts.Members,
		States:    locationCounts.States,
		Cities:    locationCounts.Cities,
		TopStates: views,
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}
