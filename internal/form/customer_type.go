package form

import "strings"

// CustomerType is the submitter's declared relationship to the business.
// The form field is free text; the three states are modeled explicitly
// because the partial-match policy branches on them.
type CustomerType int

const (
	// CustomerTypeUnspecified means the field was absent or unrecognized.
	// Policy treats it the same as a declared new customer.
	CustomerTypeUnspecified CustomerType = iota
	CustomerTypeNew
	CustomerTypeExisting
)

func (t CustomerType) String() string {
	switch t {
	case CustomerTypeNew:
		return "new"
	case CustomerTypeExisting:
		return "existing"
	default:
		return "unspecified"
	}
}

// ParseCustomerType interprets the free-text "Are you a new or existing
// customer?" answer. "Returning" counts as existing.
func ParseCustomerType(s string) CustomerType {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return CustomerTypeUnspecified
	case strings.Contains(s, "existing"), strings.Contains(s, "returning"):
		return CustomerTypeExisting
	case strings.Contains(s, "new"):
		return CustomerTypeNew
	default:
		return CustomerTypeUnspecified
	}
}
