package family

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"family-records-go/internal/domain/location"
	"family-records-go/internal/domain/search"
	"family-records-go/internal/domain/status"
)

// LocationChecker is the slice of the location repository the family service
// needs to validate state/city references.
type LocationChecker interface {
	GetState(ctx context.Context, id uint) (*location.State, error)
	GetCity(ctx context.Context, id uint) (*location.City, error)
}

type Service struct {
	repo      Repository
	locations LocationChecker

	// cascadeDelete controls whether soft-deleting a head also soft-deletes
	// its members and hobbies.
	cascadeDelete bool
}

func NewService(repo Repository, locations LocationChecker, cascadeDelete bool) *Service {
	return &Service{repo: repo, locations: locations, cascadeDelete: cascadeDelete}
}

type HeadInput struct {
	Name          string
	Surname       string
	DOB           time.Time
	MobileNo      string
	Address       string
	Pincode       string
	MaritalStatus string
	WeddingDate   *time.Time
	PhotoPath     string
	StateID       uint
	CityID        uint
}

type MemberInput struct {
	ID            uint
	Name          string
	DOB           time.Time
	MaritalStatus string
	WeddingDate   *time.Time
	Education     string
	Relation      string
	PhotoPath     string
}

type HobbyInput struct {
	ID   uint
	Name string
}

type FamilyInput struct {
	Head    HeadInput
	Members []MemberInput
	Hobbies []HobbyInput

	// Update only: status to assign and child rows the form removed.
	Status           int
	RemovedMemberIDs []uint
	RemovedHobbyIDs  []uint
}

// FamilyDetail is a head with its live (non-deleted) children.
type FamilyDetail struct {
	Head    FamilyHead
	Members []FamilyMember
	Hobbies []Hobby
}

// ListHeads returns non-deleted heads with member counts, newest first. The
// query is matched independently against the head name, mobile number, state
// name and city name; per-field results are unioned and deduplicated.
func (s *Service) ListHeads(ctx context.Context, query string) ([]HeadWithCount, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListHeads(ctx)
	}

	byName, err := s.repo.SearchHeadsByName(ctx, query)
	if err != nil {
		return nil, err
	}
	byMobile, err := s.repo.SearchHeadsByMobile(ctx, query)
	if err != nil {
		return nil, err
	}
	byState, err := s.repo.SearchHeadsByStateName(ctx, query)
	if err != nil {
		return nil, err
	}
	byCity, err := s.repo.SearchHeadsByCityName(ctx, query)
	if err != nil {
		return nil, err
	}

	heads := search.UnionByID(func(h HeadWithCount) uint { return h.ID },
		byName, byMobile, byState, byCity)
	sort.SliceStable(heads, func(i, j int) bool {
		if heads[i].CreatedAt.Equal(heads[j].CreatedAt) {
			return heads[i].ID > heads[j].ID
		}
		return heads[i].CreatedAt.After(heads[j].CreatedAt)
	})
	return heads, nil
}

func (s *Service) CreateFamily(ctx context.Context, input FamilyInput) (*FamilyHead, error) {
	if err := s.validateInput(ctx, input, false); err != nil {
		return nil, err
	}

	head := FamilyHead{
		Name:          strings.TrimSpace(input.Head.Name),
		Surname:       strings.TrimSpace(input.Head.Surname),
		DOB:           input.Head.DOB,
		MobileNo:      strings.TrimSpace(input.Head.MobileNo),
		Address:       strings.TrimSpace(input.Head.Address),
		Pincode:       strings.TrimSpace(input.Head.Pincode),
		MaritalStatus: input.Head.MaritalStatus,
		WeddingDate:   input.Head.WeddingDate,
		PhotoPath:     input.Head.PhotoPath,
		StateID:       input.Head.StateID,
		CityID:        input.Head.CityID,
		Status:        status.Active,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateHead(ctx, &head); err != nil {
			return err
		}
		for _, m := range input.Members {
			member := newMember(head.ID, m)
			if err := tx.CreateMember(ctx, &member); err != nil {
				return err
			}
		}
		for _, h := range input.Hobbies {
			hobby := newHobby(head.ID, h)
			if err := tx.CreateHobby(ctx, &hobby); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (s *Service) GetFamily(ctx context.Context, id uint) (*FamilyDetail, error) {
	head, err := s.repo.GetHead(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembersByHead(ctx, id)
	if err != nil {
		return nil, err
	}
	hobbies, err := s.repo.ListHobbiesByHead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FamilyDetail{Head: *head, Members: members, Hobbies: hobbies}, nil
}

func (s *Service) UpdateFamily(ctx context.Context, id uint, input FamilyInput) (*FamilyHead, error) {
	if err := s.validateInput(ctx, input, true); err != nil {
		return nil, err
	}

	st, err := status.Parse(input.Status)
	if err != nil {
		return nil, invalidField("status", "Status must be active or inactive.")
	}

	var updated *FamilyHead
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		head, err := tx.GetHead(ctx, id)
		if err != nil {
			return err
		}

		head.Name = strings.TrimSpace(input.Head.Name)
		head.Surname = strings.TrimSpace(input.Head.Surname)
		head.DOB = input.Head.DOB
		head.MobileNo = strings.TrimSpace(input.Head.MobileNo)
		head.Address = strings.TrimSpace(input.Head.Address)
		head.Pincode = strings.TrimSpace(input.Head.Pincode)
		head.MaritalStatus = input.Head.MaritalStatus
		head.WeddingDate = input.Head.WeddingDate
		head.StateID = input.Head.StateID
		head.CityID = input.Head.CityID
		head.Status = st
		if input.Head.PhotoPath != "" {
			head.PhotoPath = input.Head.PhotoPath
		}

		if err := tx.UpdateHead(ctx, head); err != nil {
			return err
		}

		for _, m := range input.Members {
			if m.ID == 0 {
				member := newMember(head.ID, m)
				if err := tx.CreateMember(ctx, &member); err != nil {
					return err
				}
				continue
			}
			member, err := tx.GetMember(ctx, m.ID)
			if err != nil {
				return err
			}
			if member.HeadID != head.ID {
				return ErrMemberNotFound
			}
			member.Name = strings.TrimSpace(m.Name)
			member.DOB = m.DOB
			member.MaritalStatus = m.MaritalStatus
			member.WeddingDate = m.WeddingDate
			member.Education = strings.TrimSpace(m.Education)
			member.Relation = strings.TrimSpace(m.Relation)
			if m.PhotoPath != "" {
				member.PhotoPath = m.PhotoPath
			}
			if err := tx.UpdateMember(ctx, member); err != nil {
				return err
			}
		}
		for _, memberID := range input.RemovedMemberIDs {
			member, err := tx.GetMember(ctx, memberID)
			if err != nil {
				return err
			}
			if member.HeadID != head.ID {
				return ErrMemberNotFound
			}
			if err := tx.SoftDeleteMember(ctx, member.ID); err != nil {
				return err
			}
		}

		for _, h := range input.Hobbies {
			if h.ID == 0 {
				hobby := newHobby(head.ID, h)
				if err := tx.CreateHobby(ctx, &hobby); err != nil {
					return err
				}
				continue
			}
			hobby, err := tx.GetHobby(ctx, h.ID)
			if err != nil {
				return err
			}
			if hobby.HeadID != head.ID {
				return ErrHobbyNotFound
			}
			hobby.Name = strings.TrimSpace(h.Name)
			if err := tx.UpdateHobby(ctx, hobby); err != nil {
				return err
			}
		}
		for _, hobbyID := range input.RemovedHobbyIDs {
			hobby, err := tx.GetHobby(ctx, hobbyID)
			if err != nil {
				return err
			}
			if hobby.HeadID != head.ID {
				return ErrHobbyNotFound
			}
			if err := tx.SoftDeleteHobby(ctx, hobby.ID); err != nil {
				return err
			}
		}

		updated = head
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteFamily soft-deletes a head. When cascade is enabled its members and
// hobbies are soft-deleted in the same transaction.
func (s *Service) DeleteFamily(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetHead(ctx, id); err != nil {
			return err
		}
		if s.cascadeDelete {
			if err := tx.SoftDeleteMembersByHead(ctx, id); err != nil {
				return err
			}
			if err := tx.SoftDeleteHobbiesByHead(ctx, id); err != nil {
				return err
			}
		}
		return tx.SoftDeleteHead(ctx, id)
	})
}

// ExportFamily resolves a head with its Active children only, ready for the
// PDF/Excel writers.
func (s *Service) ExportFamily(ctx context.Context, id uint) (*FamilyDetail, error) {
	head, err := s.repo.GetHead(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ActiveMembersByHead(ctx, id)
	if err != nil {
		return nil, err
	}
	hobbies, err := s.repo.ActiveHobbiesByHead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FamilyDetail{Head: *head, Members: members, Hobbies: hobbies}, nil
}

// ExportHeads resolves every matching head with its Active children for the
// all-heads spreadsheet.
func (s *Service) ExportHeads(ctx context.Context, query string) ([]FamilyDetail, error) {
	heads, err := s.ListHeads(ctx, query)
	if err != nil {
		return nil, err
	}

	details := make([]FamilyDetail, 0, len(heads))
	for _, h := range heads {
		members, err := s.repo.ActiveMembersByHead(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		hobbies, err := s.repo.ActiveHobbiesByHead(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, FamilyDetail{Head: h.FamilyHead, Members: members, Hobbies: hobbies})
	}
	return details, nil
}

type FamilyCounts struct {
	Heads   int64
	Members int64
}

func (s *Service) Counts(ctx context.Context) (*FamilyCounts, error) {
	heads, err := s.repo.CountHeads(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}
	return &FamilyCounts{Heads: heads, Members: members}, nil
}

// TopStates returns the states with the most family heads, descending.
func (s *Service) TopStates(ctx context.Context, limit int) ([]StateHeadCount, error) {
	if limit < 1 {
		limit = 5
	}
	return s.repo.TopStatesByHeadCount(ctx, limit)
}

func newMember(headID uint, m MemberInput) FamilyMember {
	return FamilyMember{
		HeadID:        headID,
		Name:          strings.TrimSpace(m.Name),
		DOB:           m.DOB,
		MaritalStatus: m.MaritalStatus,
		WeddingDate:   m.WeddingDate,
		Education:     strings.TrimSpace(m.Education),
		Relation:      strings.TrimSpace(m.Relation),
		PhotoPath:     m.PhotoPath,
		Status:        status.Active,
	}
}

func newHobby(headID uint, h HobbyInput) Hobby {
	return Hobby{
		HeadID: headID,
		Name:   strings.TrimSpace(h.Name),
		Status: status.Active,
	}
}

func (s *Service) validateInput(ctx context.Context, input FamilyInput, forUpdate bool) error {
	if err := validateHead(input.Head); err != nil {
		return err
	}

	state, err := s.locations.GetState(ctx, input.Head.StateID)
	if err != nil {
		return invalidField("state", "Select a valid state.")
	}
	city, err := s.locations.GetCity(ctx, input.Head.CityID)
	if err != nil {
		return invalidField("city", "Select a valid city.")
	}
	if city.StateID != state.ID {
		return invalidField("city", "City does not belong to the selected state.")
	}

	for i, m := range input.Members {
		if err := validateMember(i, m); err != nil {
			return err
		}
	}
	for i, h := range input.Hobbies {
		if strings.TrimSpace(h.Name) == "" {
			return invalidField(memberField("hobbies", i, "hobby"), "Hobby is required.")
		}
	}
	return nil
}

func validateHead(h HeadInput) error {
	if strings.TrimSpace(h.Name) == "" {
		return invalidField("name", "Name is required.")
	}
	if strings.TrimSpace(h.Surname) == "" {
		return invalidField("surname", "Surname is required.")
	}
	if h.DOB.IsZero() {
		return invalidField("dob", "Birth date is required.")
	}
	if !validMobile(h.MobileNo) {
		return invalidField("mobno", "Mobile number must be 10 digits.")
	}
	if strings.TrimSpace(h.Address) == "" {
		return invalidField("address", "Address is required.")
	}
	if !validPincode(h.Pincode) {
		return invalidField("pincode", "Pincode must be 6 digits.")
	}
	if err := validateMarital(h.MaritalStatus, h.WeddingDate, "marital_status", "wedding_date"); err != nil {
		return err
	}
	if h.StateID == 0 {
		return invalidField("state", "State is required.")
	}
	if h.CityID == 0 {
		return invalidField("city", "City is required.")
	}
	return nil
}

func validateMember(index int, m MemberInput) error {
	if strings.TrimSpace(m.Name) == "" {
		return invalidField(memberField("members", index, "name"), "Name is required.")
	}
	if m.DOB.IsZero() {
		return invalidField(memberField("members", index, "dob"), "Birth date is required.")
	}
	if strings.TrimSpace(m.Relation) == "" {
		return invalidField(memberField("members", index, "relation"), "Relation is required.")
	}
	return validateMarital(m.MaritalStatus, m.WeddingDate,
		memberField("members", index, "marital_status"),
		memberField("members", index, "wedding_date"))
}

func validateMarital(marital string, weddingDate *time.Time, maritalField, weddingField string) error {
	switch marital {
	case MaritalUnmarried:
		return nil
	case MaritalMarried:
		if weddingDate == nil || weddingDate.IsZero() {
			return invalidField(weddingField, "Wedding date is required for married.")
		}
		return nil
	default:
		return invalidField(maritalField, "Marital status must be married or unmarried.")
	}
}

func memberField(prefix string, index int, field string) string {
	return prefix + "[" + strconv.Itoa(index) + "]." + field
}

func validMobile(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != 10 {
		return false
	}
	return allDigits(value)
}

func validPincode(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != 6 {
		return false
	}
	return allDigits(value)
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
