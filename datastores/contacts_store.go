// Package datastores holds the contacts store contract and its implementations.
package datastores

import (
	"context"
	"errors"
)

type Contact struct {
	ID     ContactID
	Name   string
	Number string
}

func (c *Contact) clone() *Contact { clone := *c; return &clone }

// ContactsStore is the persistence contract for contacts.
//
// Implementations own the stored records: values returned to callers are
// copies and values passed in are never retained.
type ContactsStore interface {
	List(context.Context) ([]*Contact, error)
	Get(context.Context, ContactID) (*Contact, error)
	// Create assigns a new ID to the contact and stores it.
	Create(context.Context, *Contact) (ContactID, error)
	// Update replaces the name and number of an existing contact.
	Update(context.Context, ContactID, *Contact) (*Contact, error)
	// Delete succeeds whether or not the contact exists.
	Delete(context.Context, ContactID) error
	Count(context.Context) (int, error)
}

var (
	ErrObjectNotFound = errors.New("store: object not found")
	ErrMalformedID    = errors.New("store: malformed id")
	ErrDuplicateName  = errors.New("store: duplicate name")
	ErrPersistence    = errors.New("store: persistence failure")
)
