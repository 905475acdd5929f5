// Package form parses Elfsight widget submissions and normalizes contact data.
package form

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Field is one submitted form field, in submission order.
type Field struct {
	Name  string
	Value string
}

// Submission is a parsed form submission. The ordered raw fields are kept
// for the audit note; the routed values feed normalization and assembly.
type Submission struct {
	Fields []Field

	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Street         string
	StreetLine2    string
	City           string
	State          string
	Zip            string
	CustomerType   CustomerType
	ServiceNeeded  string
	ServiceDetails []string
	RequestDetails string
	Attachments    []string
	SMSConsent     bool
}

// elfsightField is one entry of the Elfsight webhook payload array.
type elfsightField struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// Parse decodes a webhook payload into a Submission. Two shapes are
// accepted: the Elfsight ordered field array, and a flat JSON object used
// for manual testing. Field names are matched case-insensitively by
// substring, so widget edits that rename "Phone" to "Phone Number" keep
// working.
func Parse(payload []byte) (*Submission, error) {
	trimmed := strings.TrimLeft(string(payload), " \t\r\n")
	if trimmed == "" {
		return nil, eris.New("form: empty payload")
	}

	if strings.HasPrefix(trimmed, "[") {
		var fields []elfsightField
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, eris.Wrap(err, "form: decode field array")
		}
		return fromFields(fields), nil
	}

	var flat map[string]any
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil, eris.Wrap(err, "form: decode payload")
	}
	return fromFlat(flat), nil
}

func fromFields(fields []elfsightField) *Submission {
	sub := &Submission{}
	for _, f := range fields {
		sub.Fields = append(sub.Fields, Field{Name: f.Name, Value: valueString(f.Value)})
		sub.route(strings.ToLower(strings.TrimSpace(f.Name)), f.Value, f.Type)
	}
	sub.finish()
	return sub
}

func fromFlat(flat map[string]any) *Submission {
	// Map iteration order is random; sort keys so the audit note and the
	// routing outcome are deterministic.
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sub := &Submission{}
	for _, k := range keys {
		v := flat[k]
		sub.Fields = append(sub.Fields, Field{Name: k, Value: valueString(v)})
		sub.route(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(k), "_", " ")), v, "")
	}
	sub.finish()
	return sub
}

// route assigns a raw field to its semantic slot. The checks run most
// specific first: "street address line 2" before "street address", "first
// name" before "name".
func (s *Submission) route(name string, value any, fieldType string) {
	text := valueString(value)

	switch {
	case strings.Contains(name, "first name"):
		s.FirstName = text
	case strings.Contains(name, "last name"):
		s.LastName = text
	case strings.Contains(name, "email"):
		s.Email = text
	case strings.Contains(name, "phone"):
		s.Phone = text
	case strings.Contains(name, "street address line 2"):
		s.StreetLine2 = text
	case strings.Contains(name, "street address"), name == "street":
		s.Street = text
	case strings.Contains(name, "city"):
		s.City = text
	case strings.Contains(name, "state") && !strings.Contains(name, "service"):
		s.State = text
	case strings.Contains(name, "postal"), strings.Contains(name, "zip"):
		s.Zip = text
	case strings.Contains(name, "new or existing"), strings.Contains(name, "are you"), name == "customer type":
		s.CustomerType = ParseCustomerType(text)
	case strings.Contains(name, "sms") && strings.Contains(name, "consent"):
		s.SMSConsent = isTruthy(value)
	case strings.Contains(name, "service needed"):
		s.ServiceNeeded = text
	case strings.Contains(name, "service details"):
		s.ServiceDetails = valueList(value)
	case strings.Contains(name, "request details"):
		s.RequestDetails = text
	case strings.Contains(name, "images"), strings.Contains(name, "plans"),
		strings.Contains(name, "specs"), fieldType == "file":
		s.Attachments = valueList(value)
	case name == "address":
		addr := ParseAddress(text)
		s.Street, s.City, s.State, s.Zip = addr.Street, addr.City, addr.State, addr.Zip
	case strings.Contains(name, "name"):
		// A combined "Name" field; split into first/last.
		s.FirstName, s.LastName = ParseName(text)
	}
}

// finish derives fields that depend on more than one raw value.
func (s *Submission) finish() {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
}

// RawAddress renders the submitted address as a single line for similarity
// comparison against existing service addresses.
func (s *Submission) RawAddress() string {
	var parts []string
	for _, p := range []string{s.Street, s.StreetLine2, s.City, s.State, s.Zip} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// HasAddress reports whether any address component was submitted.
func (s *Submission) HasAddress() bool {
	return s.RawAddress() != ""
}

func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, valueString(item))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// valueList splits a multi-select value into its selections. Elfsight sends
// either an array or a comma-separated string depending on widget version.
func valueList(v any) []string {
	switch val := v.(type) {
	case []any:
		var items []string
		for _, item := range val {
			if s := valueString(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		var items []string
		for _, part := range strings.Split(val, ",") {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
		return items
	default:
		if s := valueString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "1", "on":
			return true
		}
	}
	return false
}
