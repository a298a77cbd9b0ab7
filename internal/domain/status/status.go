package status

import "errors"

var ErrInvalidStatus = errors.New("invalid status")

// Status is the lifecycle state shared by every record in the system.
// Rows are never physically removed through the normal API; Deleted rows
// stay in the store and are filtered out of default queries.
type Status int

const (
	Active   Status = 1
	Inactive Status = 2
	Deleted  Status = 9
)

func (s Status) Valid() bool {
	switch s {
	case Active, Inactive, Deleted:
		return true
	}
	return false
}

// Assignable reports whether s may be set through an update operation.
// Deleted is reachable only via the soft-delete operations and is terminal.
func (s Status) Assignable() bool {
	return s == Active || s == Inactive
}

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Parse validates a raw status value from a form or API payload for use in
// an update. Deleted is rejected here on purpose.
func Parse(v int) (Status, error) {
	s := Status(v)
	if !s.Assignable() {
		return 0, ErrInvalidStatus
	}
	return s, nil
}
