package datastores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultContacts are the phonebook entries loaded when no seed file is given.
func DefaultContacts() []*Contact {
	return []*Contact{
		{Name: "Arto Hellas", Number: "040-123456"},
		{Name: "Ada Lovelace", Number: "39-44-5323523"},
		{Name: "Dan Abramov", Number: "12-43-234345"},
		{Name: "Mary Poppendieck", Number: "39-23-6423122"},
	}
}

type seedContact struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
}

// LoadSeed reads a YAML sequence of {name, number} mappings.
func LoadSeed(path string) ([]*Contact, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedContact
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	contacts := make([]*Contact, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" || e.Number == "" {
			return nil, fmt.Errorf("parse seed file: entry %d: name and number are required", i)
		}
		contacts = append(contacts, &Contact{Name: e.Name, Number: e.Number})
	}
	return contacts, nil
}

// Seed creates every contact whose name is not yet in store and returns
// how many were created.
func Seed(ctx context.Context, store ContactsStore, contacts []*Contact) (int, error) {
	created := 0
	for _, c := range contacts {
		_, err := store.Create(ctx, c)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateName):
		default:
			return created, fmt.Errorf("seed %q: %w", c.Name, err)
		}
	}
	return created, nil
}
