package datastores

import (
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseContactID(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want ContactID
	}{
		{"1", 1},
		{"999", 999},
		{"9223372036854775807", 9223372036854775807},
	} {
		t.Run(tt.in, func(t *testing.T) {
			id, err := ParseContactID(tt.in)
			be.Err(t, err, nil)
			be.Equal(t, id, tt.want)
			be.Equal(t, id.String(), tt.in)
		})
	}

	for _, in := range []string{"", "0", "01", "-1", "+1", "1.5", "abc", " 1", "5e3", "9223372036854775808", "64b7f0c2e1d3a9f4c8b6e2a1"} {
		t.Run("malformed "+in, func(t *testing.T) {
			_, err := ParseContactID(in)
			be.Err(t, err, ErrMalformedID)
		})
	}
}

func TestContactIDJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		ID ContactID `json:"id"`
	}{42})
	be.Err(t, err, nil)
	be.Equal(t, string(b), `{"id":"42"}`)
}
