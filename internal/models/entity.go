package models

import (
	"fmt"

	"github.com/desertthunder/crate/internal/shared"
)

// identitySeparator joins the two identity fields in the printable key.
const identitySeparator = "|"

// Entity is implemented by every kind stored in a collection.
type Entity[T any] interface {
	EntityID() int                             // EntityID returns the manager-assigned id
	IdentityFields() (title, secondary string) // IdentityFields returns the fields that make up the dedupe key
	WithID(id int) T                           // WithID returns a copy carrying id and any id-derived defaults
}

// Identity is the comparable dedupe key of an entity: both identity fields, trimmed and lowercased.
//
// Fields are kept apart, so a separator character inside a title can't make two entities collide.
type Identity struct {
	Title     string
	Secondary string
}

// NewIdentity normalizes title and secondary into an [Identity].
func NewIdentity(title, secondary string) Identity {
	return Identity{Title: shared.NormalizeKey(title), Secondary: shared.NormalizeKey(secondary)}
}

// String returns the printable "title|secondary" form used in logs.
func (id Identity) String() string {
	return id.Title + identitySeparator + id.Secondary
}

// Empty reports whether either field is blank.
func (id Identity) Empty() bool {
	return id.Title == "" || id.Secondary == ""
}

// IdentityKey returns the printable form of the normalized key for a title and its secondary field.
//
// Use [NewIdentity] or [KeyOf] for comparisons.
func IdentityKey(title, secondary string) string {
	return NewIdentity(title, secondary).String()
}

// KeyOf returns the [Identity] of e.
func KeyOf[T Entity[T]](e T) Identity {
	return NewIdentity(e.IdentityFields())
}

// DuplicateError reports an insert whose identity key collides with an existing entity.
type DuplicateError struct {
	Kind      string
	Title     string
	Secondary string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q by %q already exists", e.Kind, e.Title, e.Secondary)
}

// Unwrap lets callers match with errors.Is(err, shared.ErrDuplicate).
func (e *DuplicateError) Unwrap() error {
	return shared.ErrDuplicate
}
