package location

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"family-records-go/internal/domain/status"
)

type fakeLocationRepo struct {
	states map[uint]*State
	cities map[uint]*City
	nextID uint

	// failCascadeAfter makes SoftDeleteCitiesByState fail after flipping
	// this many cities, to simulate a mid-cascade fault.
	failCascadeAfter int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{
		states:           make(map[uint]*State),
		cities:           make(map[uint]*City),
		failCascadeAfter: -1,
	}
}

var errInjected = errors.New("injected fault")

func (r *fakeLocationRepo) addState(name string, st status.Status) *State {
	r.nextID++
	state := &State{ID: r.nextID, Name: name, Status: st, CreatedAt: time.Now().Add(time.Duration(r.nextID) * time.Second)}
	r.states[state.ID] = state
	return state
}

func (r *fakeLocationRepo) addCity(name string, stateID uint, st status.Status) *City {
	r.nextID++
	city := &City{ID: r.nextID, Name: name, StateID: stateID, Status: st, CreatedAt: time.Now().Add(time.Duration(r.nextID) * time.Second)}
	if state, ok := r.states[stateID]; ok {
		city.State = *state
	}
	r.cities[city.ID] = city
	return city
}

func (r *fakeLocationRepo) snapshot() (map[uint]State, map[uint]City) {
	states := make(map[uint]State, len(r.states))
	for id, s := range r.states {
		states[id] = *s
	}
	cities := make(map[uint]City, len(r.cities))
	for id, c := range r.cities {
		cities[id] = *c
	}
	return states, cities
}

func (r *fakeLocationRepo) restore(states map[uint]State, cities map[uint]City) {
	r.states = make(map[uint]*State, len(states))
	for id := range states {
		s := states[id]
		r.states[id] = &s
	}
	r.cities = make(map[uint]*City, len(cities))
	for id := range cities {
		c := cities[id]
		r.cities[id] = &c
	}
}

func (r *fakeLocationRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	states, cities := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(states, cities)
		return err
	}
	return nil
}

func (r *fakeLocationRepo) ListStates(ctx context.Context) ([]State, error) {
	var result []State
	for _, s := range r.states {
		if s.Status != status.Deleted {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) SearchStatesByName(ctx context.Context, query string) ([]State, error) {
	query = strings.ToLower(query)
	var result []State
	for _, s := range r.states {
		if s.Status != status.Deleted && strings.Contains(strings.ToLower(s.Name), query) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) GetState(ctx context.Context, id uint) (*State, error) {
	s, ok := r.states[id]
	if !ok || s.Status == status.Deleted {
		return nil, ErrStateNotFound
	}
	return s, nil
}

func (r *fakeLocationRepo) CreateState(ctx context.Context, state *State) error {
	r.nextID++
	state.ID = r.nextID
	r.states[state.ID] = state
	return nil
}

func (r *fakeLocationRepo) UpdateState(ctx context.Context, id uint, name string, st status.Status) error {
	state, ok := r.states[id]
	if !ok {
		return ErrStateNotFound
	}
	state.Name = name
	state.Status = st
	return nil
}

func (r *fakeLocationRepo) SoftDeleteState(ctx context.Context, id uint) error {
	state, ok := r.states[id]
	if !ok {
		return ErrStateNotFound
	}
	state.Status = status.Deleted
	return nil
}

func (r *fakeLocationRepo) SoftDeleteCitiesByState(ctx context.Context, stateID uint) error {
	flipped := 0
	for _, c := range r.cities {
		if c.StateID != stateID || c.Status == status.Deleted {
			continue
		}
		if r.failCascadeAfter >= 0 && flipped == r.failCascadeAfter {
			return errInjected
		}
		c.Status = status.Deleted
		flipped++
	}
	return nil
}

func (r *fakeLocationRepo) CountStates(ctx context.Context) (int64, error) {
	var count int64
	for _, s := range r.states {
		if s.Status != status.Deleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeLocationRepo) CountStatesByStatus(ctx context.Context, st status.Status) (int64, error) {
	var count int64
	for _, s := range r.states {
		if s.Status == st {
			count++
		}
	}
	return count, nil
}

func (r *fakeLocationRepo) ListCities(ctx context.Context) ([]City, error) {
	var result []City
	for _, c := range r.cities {
		if c.Status != status.Deleted {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) SearchCitiesByName(ctx context.Context, query string) ([]City, error) {
	query = strings.ToLower(query)
	var result []City
	for _, c := range r.cities {
		if c.Status != status.Deleted && strings.Contains(strings.ToLower(c.Name), query) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) SearchCitiesByStateName(ctx context.Context, query string) ([]City, error) {
	query = strings.ToLower(query)
	var result []City
	for _, c := range r.cities {
		if c.Status == status.Deleted {
			continue
		}
		state, ok := r.states[c.StateID]
		if ok && strings.Contains(strings.ToLower(state.Name), query) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) GetCity(ctx context.Context, id uint) (*City, error) {
	c, ok := r.cities[id]
	if !ok || c.Status == status.Deleted {
		return nil, ErrCityNotFound
	}
	return c, nil
}

func (r *fakeLocationRepo) CreateCity(ctx context.Context, city *City) error {
	r.nextID++
	city.ID = r.nextID
	r.cities[city.ID] = city
	return nil
}

func (r *fakeLocationRepo) UpdateCity(ctx context.Context, id uint, name string, stateID uint, st status.Status) error {
	city, ok := r.cities[id]
	if !ok {
		return ErrCityNotFound
	}
	city.Name = name
	city.StateID = stateID
	city.Status = st
	return nil
}

func (r *fakeLocationRepo) SoftDeleteCity(ctx context.Context, id uint) error {
	city, ok := r.cities[id]
	if !ok {
		return ErrCityNotFound
	}
	city.Status = status.Deleted
	return nil
}

func (r *fakeLocationRepo) ActiveCitiesByState(ctx context.Context, stateID uint) ([]City, error) {
	var result []City
	for _, c := range r.cities {
		if c.StateID == stateID && c.Status == status.Active {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeLocationRepo) CountCities(ctx context.Context) (int64, error) {
	var count int64
	for _, c := range r.cities {
		if c.Status != status.Deleted {
			count++
		}
	}
	return count, nil
}

func TestSoftDeletedStateExcludedButRetained(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Active)
	svc := NewService(repo)

	if err := svc.DeleteState(context.Background(), state.ID); err != nil {
		t.Fatalf("DeleteState: %v", err)
	}

	states, err := svc.ListStates(context.Background(), "")
	if err != nil {
		t.Fatalf("ListStates: %v", err)
	}
	for _, s := range states {
		if s.ID == state.ID {
			t.Fatal("soft-deleted state still listed")
		}
	}

	// The row still exists in the store, only its status changed.
	row, ok := repo.states[state.ID]
	if !ok {
		t.Fatal("soft delete removed the row")
	}
	if row.Status != status.Deleted {
		t.Fatalf("status = %v, want Deleted", row.Status)
	}

	if _, err := svc.GetState(context.Background(), state.ID); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("GetState on deleted row: got %v, want ErrStateNotFound", err)
	}
}

func TestDeleteStateCascadesToCities(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Active)
	repo.addCity("Surat", state.ID, status.Active)
	repo.addCity("Rajkot", state.ID, status.Inactive)
	other := repo.addState("Goa", status.Active)
	kept := repo.addCity("Panaji", other.ID, status.Active)
	svc := NewService(repo)

	if err := svc.DeleteState(context.Background(), state.ID); err != nil {
		t.Fatalf("DeleteState: %v", err)
	}

	for _, c := range repo.cities {
		if c.StateID == state.ID && c.Status != status.Deleted {
			t.Fatalf("city %q not cascaded", c.Name)
		}
	}
	if repo.cities[kept.ID].Status != status.Active {
		t.Fatal("cascade leaked into another state")
	}
}

func TestDeleteStateCascadeIsAtomic(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Active)
	repo.addCity("Surat", state.ID, status.Active)
	repo.addCity("Rajkot", state.ID, status.Active)
	repo.addCity("Vadodara", state.ID, status.Active)
	repo.failCascadeAfter = 1
	svc := NewService(repo)

	if err := svc.DeleteState(context.Background(), state.ID); !errors.Is(err, errInjected) {
		t.Fatalf("got %v, want injected fault", err)
	}

	// A mid-cascade fault must leave no partial state observable.
	if repo.states[state.ID].Status == status.Deleted {
		t.Fatal("state deleted despite failed cascade")
	}
	for _, c := range repo.cities {
		if c.Status == status.Deleted {
			t.Fatalf("city %q deleted despite failed cascade", c.Name)
		}
	}
}

func TestCitySearchUnionHasNoDuplicates(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Goa", status.Active)
	// Matches both the city-name and state-name fields.
	city := repo.addCity("Goa Velha", state.ID, status.Active)
	svc := NewService(repo)

	cities, err := svc.ListCities(context.Background(), "goa")
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}

	seen := 0
	for _, c := range cities {
		if c.ID == city.ID {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("city appeared %d times, want exactly once", seen)
	}
}

func TestUpdateStateRejectsDeletedStatus(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Active)
	svc := NewService(repo)

	_, err := svc.UpdateState(context.Background(), state.ID, "Gujarat", int(status.Deleted))
	if !errors.Is(err, status.ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}

	if _, err := svc.UpdateState(context.Background(), state.ID, "Gujarat", int(status.Inactive)); err != nil {
		t.Fatalf("UpdateState to Inactive: %v", err)
	}
	if repo.states[state.ID].Status != status.Inactive {
		t.Fatal("status not persisted")
	}
}

func TestBlankNamesAreFieldValidationErrors(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Active)
	city := repo.addCity("Surat", state.ID, status.Active)
	svc := NewService(repo)

	assertNameError := func(err error) {
		t.Helper()
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "name" {
			t.Fatalf("got %v, want name validation error", err)
		}
	}

	// Whitespace-only names must fail the same way empty ones do.
	_, err := svc.CreateState(context.Background(), "   ")
	assertNameError(err)
	_, err = svc.UpdateState(context.Background(), state.ID, " \t ", int(status.Active))
	assertNameError(err)
	_, err = svc.CreateCity(context.Background(), "", state.ID)
	assertNameError(err)
	_, err = svc.UpdateCity(context.Background(), city.ID, "   ", state.ID, int(status.Active))
	assertNameError(err)
}

func TestCreateCityRequiresLiveState(t *testing.T) {
	repo := newFakeLocationRepo()
	state := repo.addState("Gujarat", status.Deleted)
	svc := NewService(repo)

	if _, err := svc.CreateCity(context.Background(), "Surat", state.ID); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("got %v, want ErrStateNotFound", err)
	}
}
