package status

import (
	"errors"
	"testing"
)

func TestValid(t *testing.T) {
	for _, s := range []Status{Active, Inactive, Deleted} {
		if !s.Valid() {
			t.Errorf("%v should be valid", s)
		}
	}
	for _, s := range []Status{0, 3, -1, 100} {
		if s.Valid() {
			t.Errorf("%v should be invalid", s)
		}
	}
}

func TestAssignable(t *testing.T) {
	if !Active.Assignable() || !Inactive.Assignable() {
		t.Fatal("Active and Inactive must be assignable")
	}
	if Deleted.Assignable() {
		t.Fatal("Deleted must not be assignable through updates")
	}
}

func TestParseRejectsDeleted(t *testing.T) {
	if _, err := Parse(int(Deleted)); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Parse(Deleted): got %v, want ErrInvalidStatus", err)
	}
	if _, err := Parse(0); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Parse(0): got %v, want ErrInvalidStatus", err)
	}

	s, err := Parse(int(Inactive))
	if err != nil || s != Inactive {
		t.Fatalf("Parse(Inactive) = %v, %v", s, err)
	}
}

func TestString(t *testing.T) {
	cases := map[Status]string{Active: "active", Inactive: "inactive", Deleted: "deleted", 7: "unknown"}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
