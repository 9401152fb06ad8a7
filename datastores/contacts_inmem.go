package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
//
// A single mutex serializes every operation, which makes the name uniqueness
// check and the insert one atomic step.
type ContactsInmem struct {
	mu       sync.Mutex
	lastID   ContactID
	index    map[ContactID]int
	contacts []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store holding copies of cs in order.
// Contacts with a zero ID are assigned the next free one.
func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{index: make(map[ContactID]int, len(cs))}
	for _, c := range cs {
		s.lastID = max(s.lastID, c.ID)
	}
	for _, c := range cs {
		c := *c
		if c.ID == 0 {
			s.lastID++
			c.ID = s.lastID
		}
		s.index[c.ID] = len(s.contacts)
		s.contacts = append(s.contacts, &c)
	}
	return s
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c.clone())
	}
	return contacts, nil
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return s.contacts[index].clone(), nil
}

func (s *ContactsInmem) Create(_ context.Context, c *Contact) (ContactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(c.Name, 0) {
		return 0, ErrDuplicateName
	}
	s.lastID++
	stored := &Contact{ID: s.lastID, Name: c.Name, Number: c.Number}
	s.index[stored.ID] = len(s.contacts)
	s.contacts = append(s.contacts, stored)
	return stored.ID, nil
}

func (s *ContactsInmem) Update(_ context.Context, id ContactID, c *Contact) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	if s.nameTaken(c.Name, id) {
		return nil, ErrDuplicateName
	}
	stored := s.contacts[index]
	stored.Name, stored.Number = c.Name, c.Number
	return stored.clone(), nil
}

func (s *ContactsInmem) Delete(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil
	}
	delete(s.index, id)
	s.contacts = slices.Delete(s.contacts, index, index+1)
	for i := index; i < len(s.contacts); i++ {
		s.index[s.contacts[i].ID] = i
	}
	return nil
}

func (s *ContactsInmem) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts), nil
}

// nameTaken reports whether a contact other than except is named name.
// s.mu must be held.
func (s *ContactsInmem) nameTaken(name string, except ContactID) bool {
	return slices.ContainsFunc(s.contacts, func(c *Contact) bool {
		return c.Name == name && c.ID != except
	})
}
