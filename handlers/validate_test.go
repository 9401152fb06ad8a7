package handlers

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestValidateContact(t *testing.T) {
	for _, tt := range []struct {
		name, number string
		want         error
	}{
		{"Arto Hellas", "040-123456", nil},
		{" ", " ", nil},
		{"", "040-123456", &FieldError{Field: "name", Reason: FieldMissing}},
		{"Arto Hellas", "", &FieldError{Field: "number", Reason: FieldMissing}},
		{"", "", &FieldError{Field: "name", Reason: FieldMissing}},
	} {
		t.Run(tt.name+"/"+tt.number, func(t *testing.T) {
			be.Equal(t, validateContact(tt.name, tt.number), tt.want)
		})
	}
}
