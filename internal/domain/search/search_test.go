package search

import (
	"reflect"
	"testing"
)

type row struct {
	ID   uint
	Name string
}

func TestUnionByIDDeduplicates(t *testing.T) {
	byName := []row{{ID: 2, Name: "Pune"}, {ID: 1, Name: "Mumbai"}}
	byState := []row{{ID: 1, Name: "Mumbai"}, {ID: 3, Name: "Nagpur"}}

	got := UnionByID(func(r row) uint { return r.ID }, byName, byState)

	want := []row{{ID: 2, Name: "Pune"}, {ID: 1, Name: "Mumbai"}, {ID: 3, Name: "Nagpur"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UnionByID = %v, want %v", got, want)
	}
}

func TestUnionByIDEmptyGroups(t *testing.T) {
	got := UnionByID(func(r row) uint { return r.ID }, nil, []row{})
	if len(got) != 0 {
		t.Fatalf("UnionByID of empty groups = %v, want empty", got)
	}
}

func TestUnionByIDSingleGroup(t *testing.T) {
	group := []row{{ID: 5}, {ID: 4}}
	got := UnionByID(func(r row) uint { return r.ID }, group)
	if !reflect.DeepEqual(got, group) {
		t.Fatalf("UnionByID = %v, want %v", got, group)
	}
}
