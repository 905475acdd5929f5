package form

import (
	"fmt"
	"strings"
)

// ValidationError reports a missing or malformed required contact field.
// It is fatal for the request and is raised before any HCP call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form: %s", e.Message)
}

// Contact is the canonical contact record produced from a submission.
// Immutable once built: every later stage reads it, none mutate it.
type Contact struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	RawAddress string
}

// NewContact validates and normalizes the contact fields of a submission.
// First name, last name, email, and phone are all required; the phone must
// normalize to 10 digits (7-digit numbers are completed with
// defaultAreaCode).
func NewContact(sub *Submission, defaultAreaCode string) (Contact, error) {
	first := strings.TrimSpace(sub.FirstName)
	last := strings.TrimSpace(sub.LastName)
	email := NormalizeEmail(sub.Email)

	required := []struct {
		field string
		value string
	}{
		{"first_name", first},
		{"last_name", last},
		{"email", email},
		{"phone", strings.TrimSpace(sub.Phone)},
	}
	for _, r := range required {
		if r.value == "" {
			return Contact{}, &ValidationError{Field: r.field, Message: "missing " + r.field}
		}
	}

	phone, err := NormalizePhone(sub.Phone, defaultAreaCode)
	if err != nil {
		return Contact{}, err
	}

	return Contact{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Phone:      phone,
		RawAddress: sub.RawAddress(),
	}, nil
}
