package handler

import (
	"net/http"

	"family-records-go/pkg/pagination"
)

type pageEnvelope[T any] struct {
	Success bool `json:"success"`
	pagination.Page[T]
}

func pageOf[T any](items []T, page, size int) pageEnvelope[T] {
	return pageEnvelope[T]{Success: true, Page: pagination.Paginate(items, size, page)}
}

type stateRequest struct {
	Name   string `json:"name"`
	Status int    `json:"status,omitempty"`
}

func (h *Handlers) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.Locations.ListStates(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]stateView, 0, len(states))
	for _, s := range states {
		views = append(views, h.stateView(s))
	}
	writeJSON(w, http.StatusOK, pageOf(views, pageParam(r), h.pageSize))
}

func (h *Handlers) CreateState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name", "Name is required.")
		return
	}

	state, err := h.Locations.CreateState(r.Context(), req.Name)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "state": h.stateView(*state)})
}

func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	state, err := h.Locations.GetState(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": h.stateView(*state)})
}

func (h *Handlers) UpdateState(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	var req stateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name", "Name is required.")
		return
	}

	state, err := h.Locations.UpdateState(r.Context(), id, req.Name, req.Status)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": h.stateView(*state)})
}

func (h *Handlers) DeleteState(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.Locations.DeleteState(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) ExportStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.Locations.ListStates(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := h.exporter.StatesExcel(states)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeAttachment(w, "states.xlsx", excelContentType, data)
}

type cityRequest struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Status int    `json:"status,omitempty"`
}

func (h *Handlers) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Locations.ListCities(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]cityView, 0, len(cities))
	for _, c := range cities {
		views = append(views, h.cityView(c))
	}
	writeJSON(w, http.StatusOK, pageOf(views, pageParam(r), h.pageSize))
}

func (h *Handlers) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name", "Name is required.")
		return
	}

	stateID, err := h.codec.Decode(req.State)
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "state", "Select a valid state.")
		return
	}

	city, err := h.Locations.CreateCity(r.Context(), req.Name, stateID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "city": h.cityView(*city)})
}

func (h *Handlers) GetCity(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	city, err := h.Locations.GetCity(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "city": h.cityView(*city)})
}

func (h *Handlers) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	var req cityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name", "Name is required.")
		return
	}

	stateID, err := h.codec.Decode(req.State)
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "state", "Select a valid state.")
		return
	}

	city, err := h.Locations.UpdateCity(r.Context(), id, req.Name, stateID, req.Status)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "city": h.cityView(*city)})
}

func (h *Handlers) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.Locations.DeleteCity(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// CitiesByState feeds the dependent city dropdown on the family forms.
func (h *Handlers) CitiesByState(w http.ResponseWriter, r *http.Request) {
	stateID, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	cities, err := h.Locations.ActiveCitiesByState(r.Context(), stateID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]cityView, 0, len(cities))
	for _, c := range cities {
		views = append(views, h.cityView(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cities": views})
}

func (h *Handlers) ExportCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Locations.ListCities(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := h.exporter.CitiesExcel(cities)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeAttachment(w, "cities.xlsx", excelContentType, data)
}
