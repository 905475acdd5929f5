package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ElfsightFieldArray(t *testing.T) {
	payload := `[
		{"id": "f1", "name": "First Name", "value": "Sarah", "type": "short_text"},
		{"id": "f2", "name": "Last Name", "value": "Connor", "type": "short_text"},
		{"id": "f3", "name": "Email Address", "value": "sarah@test.com", "type": "email"},
		{"id": "f4", "name": "Phone Number", "value": "415-555-1234", "type": "phone"},
		{"id": "f5", "name": "Street Address", "value": "123 Main St", "type": "short_text"},
		{"id": "f6", "name": "City", "value": "San Francisco", "type": "short_text"},
		{"id": "f7", "name": "Zip / Postal Code", "value": "94102", "type": "short_text"},
		{"id": "f8", "name": "Are you a new or existing customer?", "value": "Existing Customer", "type": "choice"},
		{"id": "f9", "name": "Service Needed", "value": "Service or Repair", "type": "choice"},
		{"id": "f10", "name": "Service Details", "value": ["Water Heater", "Garbage Disposal"], "type": "multi_choice"},
		{"id": "f11", "name": "SMS Consent", "value": true, "type": "checkbox"}
	]`

	sub, err := Parse([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "Sarah", sub.FirstName)
	assert.Equal(t, "Connor", sub.LastName)
	assert.Equal(t, "sarah@test.com", sub.Email)
	assert.Equal(t, "415-555-1234", sub.Phone)
	assert.Equal(t, "123 Main St", sub.Street)
	assert.Equal(t, "San Francisco", sub.City)
	assert.Equal(t, "94102", sub.Zip)
	assert.Equal(t, CustomerTypeExisting, sub.CustomerType)
	assert.Equal(t, "Service or Repair", sub.ServiceNeeded)
	assert.Equal(t, []string{"Water Heater", "Garbage Disposal"}, sub.ServiceDetails)
	assert.True(t, sub.SMSConsent)

	// Raw fields are preserved in submission order for the audit note.
	require.Len(t, sub.Fields, 11)
	assert.Equal(t, "First Name", sub.Fields[0].Name)
	assert.Equal(t, "Water Heater, Garbage Disposal", sub.Fields[9].Value)
}

func TestParse_FlatObject(t *testing.T) {
	payload := `{
		"name": "John Smith",
		"email": "john@example.com",
		"phone": "415-555-9999",
		"address": "123 Main St, San Francisco, CA 94102",
		"customer_type": "New Customer",
		"service_details": "Water Heater, Toilets or Bidets"
	}`

	sub, err := Parse([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "John", sub.FirstName)
	assert.Equal(t, "Smith", sub.LastName)
	assert.Equal(t, "john@example.com", sub.Email)
	assert.Equal(t, "123 Main St", sub.Street)
	assert.Equal(t, "San Francisco", sub.City)
	assert.Equal(t, "CA", sub.State)
	assert.Equal(t, "94102", sub.Zip)
	assert.Equal(t, CustomerTypeNew, sub.CustomerType)
	assert.Equal(t, []string{"Water Heater", "Toilets or Bidets"}, sub.ServiceDetails)
}

func TestParse_EmptyAndInvalid(t *testing.T) {
	_, err := Parse([]byte(""))
	assert.Error(t, err)

	_, err = Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestSubmission_RawAddress(t *testing.T) {
	sub := &Submission{Street: "456 Oak Ave", City: "SF", State: "CA", Zip: "94115"}
	assert.Equal(t, "456 Oak Ave, SF, CA, 94115", sub.RawAddress())
	assert.True(t, sub.HasAddress())

	assert.False(t, (&Submission{}).HasAddress())
}

func TestParseCustomerType(t *testing.T) {
	tests := []struct {
		input    string
		expected CustomerType
	}{
		{"Existing Customer", CustomerTypeExisting},
		{"returning", CustomerTypeExisting},
		{"New Customer", CustomerTypeNew},
		{"", CustomerTypeUnspecified},
		{"not sure", CustomerTypeUnspecified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseCustomerType(tt.input), tt.input)
	}
}
