package datastores

import (
	_ "encoding" // for documentation links to [encoding]
	"fmt"
	"strconv"
)

// ContactID identifies a contact. Its text form is the canonical base-10
// representation of a positive integer: no sign, no leading zero.
type ContactID int64

// ParseContactID parses the text form of a [ContactID].
// It returns an error wrapping [ErrMalformedID] for anything else.
func ParseContactID(s string) (ContactID, error) {
	var id ContactID
	err := id.UnmarshalText([]byte(s))
	return id, err
}

func (id ContactID) String() string { return strconv.FormatInt(int64(id), 10) }

// AppendText implements [encoding.TextAppender].
func (id ContactID) AppendText(b []byte) ([]byte, error) {
	return strconv.AppendInt(b, int64(id), 10), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (id ContactID) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (id *ContactID) UnmarshalText(b []byte) error {
	if len(b) == 0 || b[0] == '0' {
		return fmt.Errorf("%w: %q", ErrMalformedID, b)
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrMalformedID, b)
		}
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedID, b)
	}
	*id = ContactID(n)
	return nil
}
