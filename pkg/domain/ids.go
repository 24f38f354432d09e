package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "cayley/pkg/domain-errors"
)

// GroupID identifies a catalog entry. It is distinct from uuid.UUID so
// identifiers cannot be mixed up with unrelated UUIDs at compile time.
type GroupID uuid.UUID

// NewGroupID returns a fresh random identifier.
func NewGroupID() GroupID { return GroupID(uuid.New()) }

// String returns the canonical hyphenated form.
func (id GroupID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether id is the zero value.
func (id GroupID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id GroupID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *GroupID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = GroupID(u)
	return nil
}

// ParseGroupID validates s at a trust boundary. Empty, malformed and nil
// UUIDs are rejected with CodeInvalidInput.
func ParseGroupID(s string) (GroupID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GroupID{}, dErrors.New(dErrors.CodeInvalidInput, "group id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return GroupID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "group id must be a UUID")
	}
	if u == uuid.Nil {
		return GroupID{}, dErrors.New(dErrors.CodeInvalidInput, "group id cannot be nil")
	}
	return GroupID(u), nil
}
