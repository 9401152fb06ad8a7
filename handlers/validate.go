package handlers

// FieldError reports a contact field that failed validation.
type FieldError struct {
	Field  string
	Reason FieldErrorReason
}

type FieldErrorReason string

const (
	FieldMissing       FieldErrorReason = "missing"
	FieldInvalidFormat FieldErrorReason = "invalid format"
)

func (e *FieldError) Error() string {
	if e.Reason == FieldMissing {
		return e.Field + " missing"
	}
	return e.Field + " has " + string(e.Reason)
}

// validateContact checks a proposed contact before it reaches the store.
// Values are taken as-is: no trimming, no format beyond presence.
func validateContact(name, number string) error {
	if name == "" {
		return &FieldError{Field: "name", Reason: FieldMissing}
	}
	if number == "" {
		return &FieldError{Field: "number", Reason: FieldMissing}
	}
	return nil
}
