package handler

import (
	"time"

	"family-records-go/internal/domain/family"
	"family-records-go/internal/domain/location"
)

const wireDateLayout = "2006-01-02"

// encodeID obfuscates a database id for the wire. An encode failure means a
// broken codec configuration, which is worth a loud log but not a 500 on
// every listing row.
func (h *Handlers) encodeID(id uint) string {
	token, err := h.codec.Encode(id)
	if err != nil {
		h.log.InternalError("http: encode id failed", err, "id", id)
		return ""
	}
	return token
}

func wireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(wireDateLayout)
}

func wireDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return wireDate(*t)
}

type stateView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handlers) stateView(s location.State) stateView {
	return stateView{
		ID:        h.encodeID(s.ID),
		Name:      s.Name,
		Status:    s.Status.String(),
		CreatedAt: wireDate(s.CreatedAt),
	}
}

type cityView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StateName string `json:"stateName"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handlers) cityView(c location.City) cityView {
	return cityView{
		ID:        h.encodeID(c.ID),
		Name:      c.Name,
		State:     h.encodeID(c.StateID),
		StateName: c.State.Name,
		Status:    c.Status.String(),
		CreatedAt: wireDate(c.CreatedAt),
	}
}

type headListView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	MobileNo    string `json:"mobno"`
	StateName   string `json:"stateName"`
	CityName    string `json:"cityName"`
	MemberCount int64  `json:"memberCount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (h *Handlers) headListView(row family.HeadWithCount) headListView {
	return headListView{
		ID:          h.encodeID(row.ID),
		Name:        row.Name,
		Surname:     row.Surname,
		MobileNo:    row.MobileNo,
		StateName:   row.State.Name,
		CityName:    row.City.Name,
		MemberCount: row.MemberCount,
		Status:      row.Status.String(),
		CreatedAt:   wireDate(row.CreatedAt),
	}
}

type headView struct {
	ID            string `json:"id"`
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
	StateName     string `json:"stateName"`
	City          string `json:"city"`
	CityName      string `json:"cityName"`
	Status        string `json:"status"`
}

func (h *Handlers) headView(head family.FamilyHead) headView {
	return headView{
		ID:            h.encodeID(head.ID),
		Name:          head.Name,
		Surname:       head.Surname,
		DOB:           wireDate(head.DOB),
		MobileNo:      head.MobileNo,
		Address:       head.Address,
		Pincode:       head.Pincode,
		MaritalStatus: head.MaritalStatus,
		WeddingDate:   wireDatePtr(head.WeddingDate),
		PhotoPath:     head.PhotoPath,
		State:         h.encodeID(head.StateID),
		StateName:     head.State.Name,
		City:          h.encodeID(head.CityID),
		CityName:      head.City.Name,
		Status:        head.Status.String(),
	}
}

type memberView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DOB           string `json:"dob"`
	MaritalStatus string `json:"maritalStatus"`
	WeddingDate   string `json:"weddingDate,omitempty"`
	Education     string `json:"education,omitempty"`
	Relation      string `json:"relation"`
	PhotoPath     string `json:"photo,omitempty"`
}

func (h *Handlers) memberView(m family.FamilyMember) memberView {
	return memberView{
		ID:            h.encodeID(m.ID),
		Name:          m.Name,
		DOB:           wireDate(m.DOB),
		MaritalStatus: m.MaritalStatus,
		WeddingDate:   wireDatePtr(m.WeddingDate),
		Education:     m.Education,
		Relation:      m.Relation,
		PhotoPath:     m.PhotoPath,
	}
}

type hobbyView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type familyDetailView struct {
	Success bool         `json:"success"`
	Head    headView     `json:"head"`
	Members []memberView `json:"members"`
	Hobbies []hobbyView  `json:"hobbies"`
}

func (h *Handlers) familyDetailView(detail *family.FamilyDetail) familyDetailView {
	members := make([]memberView, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, h.memberView(m))
	}
	hobbies := make([]hobbyView, 0, len(detail.Hobbies))
	for _, hobby := range detail.Hobbies {
		hobbies = append(hobbies, hobbyView{ID: h.encodeID(hobby.ID), Name: hobby.Name})
	}
	return familyDetailView{
		Success: true,
		Head:    h.headView(detail.Head),
		Members: members,
		Hobbies: hobbies,
	}
}
