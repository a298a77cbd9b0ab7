package handler

import (
	"fmt"
	"net/http"

	familydomain "family-records-go/internal/domain/family"
)

type headRequest struct {
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	DOB           string `json:"dob"`
	MobileNo      string `json:"mobno"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	MaritalStatus string `json:"maritalStatus"`
	WeddingDate   string `json:"weddingDate,omitempty"`
	PhotoPath     string `json:"photo,omitempty"`
	State         string `json:"state"`
	City          string `json:"city"`
}

type memberRequest struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	DOB           string `json:"dob"`
	MaritalStatus string `json:"maritalStatus"`
	WeddingDate   string `json:"weddingDate,omitempty"`
	Education     string `json:"education,omitempty"`
	Relation      string `json:"relation"`
	PhotoPath     string `json:"photo,omitempty"`
}

type hobbyRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type familyRequest struct {
	Head    headRequest     `json:"head"`
	Members []memberRequest `json:"members"`
	Hobbies []hobbyRequest  `json:"hobbies"`

	Status         int      `json:"status,omitempty"`
	RemovedMembers []string `json:"removedMembers,omitempty"`
	RemovedHobbies []string `json:"removedHobbies,omitempty"`
}

func (h *Handlers) familyInput(req familyRequest) (familydomain.FamilyInput, error) {
	dob, err := parseDateRequired(req.Head.DOB)
	if err != nil {
		return familydomain.FamilyInput{}, fieldError("dob", "Birth date is required.")
	}
	wedding, err := parseDateParam(req.Head.WeddingDate)
	if err != nil {
		return familydomain.FamilyInput{}, fieldError("wedding_date", "Wedding date is invalid.")
	}

	stateID, err := h.codec.Decode(req.Head.State)
	if err != nil {
		return familydomain.FamilyInput{}, fieldError("state", "Select a valid state.")
	}
	cityID, err := h.codec.Decode(req.Head.City)
	if err != nil {
		return familydomain.FamilyInput{}, fieldError("city", "Select a valid city.")
	}

	input := familydomain.FamilyInput{
		Head: familydomain.HeadInput{
			Name:          req.Head.Name,
			Surname:       req.Head.Surname,
			DOB:           dob,
			MobileNo:      req.Head.MobileNo,
			Address:       req.Head.Address,
			Pincode:       req.Head.Pincode,
			MaritalStatus: req.Head.MaritalStatus,
			WeddingDate:   wedding,
			PhotoPath:     req.Head.PhotoPath,
			StateID:       stateID,
			CityID:        cityID,
		},
		Status: req.Status,
	}

	for i, m := range req.Members {
		memberDOB, err := parseDateRequired(m.DOB)
		if err != nil {
			return familydomain.FamilyInput{}, fieldError(fmt.Sprintf("members[%d].dob", i), "Birth date is required.")
		}
		memberWedding, err := parseDateParam(m.WeddingDate)
		if err != nil {
			return familydomain.FamilyInput{}, fieldError(fmt.Sprintf("members[%d].wedding_date", i), "Wedding date is invalid.")
		}
		memberID := uint(0)
		if m.ID != "" {
			memberID, err = h.codec.Decode(m.ID)
			if err != nil {
				return familydomain.FamilyInput{}, fieldError(fmt.Sprintf("members[%d].id", i), "Unknown member.")
			}
		}
		input.Members = append(input.Members, familydomain.MemberInput{
			ID:            memberID,
			Name:          m.Name,
			DOB:           memberDOB,
			MaritalStatus: m.MaritalStatus,
			WeddingDate:   memberWedding,
			Education:     m.Education,
			Relation:      m.Relation,
			PhotoPath:     m.PhotoPath,
		})
	}

	for i, hb := range req.Hobbies {
		hobbyID := uint(0)
		if hb.ID != "" {
			hobbyID, err = h.codec.Decode(hb.ID)
			if err != nil {
				return familydomain.FamilyInput{}, fieldError(fmt.Sprintf("hobbies[%d].id", i), "Unknown hobby.")
			}
		}
		input.Hobbies = append(input.Hobbies, familydomain.HobbyInput{ID: hobbyID, Name: hb.Name})
	}

	for _, token := range req.RemovedMembers {
		id, err := h.codec.Decode(token)
		if err != nil {
			continue
		}
		input.RemovedMemberIDs = append(input.RemovedMemberIDs, id)
	}
	for _, token := range req.RemovedHobbies {
		id, err := h.codec.Decode(token)
		if err != nil {
			continue
		}
		input.RemovedHobbyIDs = append(input.RemovedHobbyIDs, id)
	}

	return input, nil
}

func fieldError(field, message string) error {
	return &familydomain.ValidationError{Field: field, Message: message}
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	heads, err := h.Families.ListHeads(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]headListView, 0, len(heads))
	for _, head := range heads {
		views = append(views, h.headListView(head))
	}
	writeJSON(w, http.StatusOK, pageOf(views, pageParam(r), h.pageSize))
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input, err := h.familyInput(req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	head, err := h.Families.CreateFamily(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "head": h.headView(*head)})
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	detail, err := h.Families.GetFamily(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.familyDetailView(detail))
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input, err := h.familyInput(req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	head, err := h.Families.UpdateFamily(r.Context(), id, input)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "head": h.headView(*head)})
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.Families.DeleteFamily(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) ExportFamilyPDF(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	detail, err := h.Families.ExportFamily(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := h.exporter.FamilyPDF(detail)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeAttachment(w, "family.pdf", pdfContentType, data)
}

func (h *Handlers) ExportFamilyExcel(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r, "id")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	detail, err := h.Families.ExportFamily(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := h.exporter.FamilyExcel(detail)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeAttachment(w, "family.xlsx", excelContentType, data)
}

func (h *Handlers) ExportFamilies(w http.ResponseWriter, r *http.Request) {
	details, err := h.Families.ExportHeads(r.Context(), searchParam(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := h.exporter.HeadsExcel(details)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeAttachment(w, "families.xlsx", excelContentType, data)
}
