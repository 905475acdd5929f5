package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

var testContact = form.Contact{
	FirstName: "Sarah",
	LastName:  "Connor",
	Email:     "sarah@test.com",
	Phone:     "4155551234",
}

func TestMatch_Exact(t *testing.T) {
	client := new(mockHCPClient)
	candidate := hcp.Customer{ID: "cus_1", MobileNumber: "+14155551234", Email: "Sarah@Test.com"}
	client.On("FindCustomersByPhone", mock.Anything, "4155551234").Return([]hcp.Customer{candidate}, nil)
	client.On("FindCustomersByEmail", mock.Anything, "sarah@test.com").Return([]hcp.Customer{candidate}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)

	assert.Equal(t, Exact, result.Type)
	assert.Equal(t, "cus_1", result.CustomerID)
	assert.ElementsMatch(t, []string{FieldPhone, FieldEmail}, result.MatchedOn)
	assert.Empty(t, result.UnchosenTies())
}

func TestMatch_PartialPhoneOnly(t *testing.T) {
	client := new(mockHCPClient)
	candidate := hcp.Customer{ID: "cus_2", MobileNumber: "+14155551234", Email: "other@test.com"}
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return([]hcp.Customer{candidate}, nil)
	client.On("FindCustomersByEmail", mock.Anything, mock.Anything).Return([]hcp.Customer{}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)

	assert.Equal(t, Partial, result.Type)
	assert.Equal(t, []string{FieldPhone}, result.MatchedOn)
	assert.Equal(t, FieldEmail, result.MissingField())
}

func TestMatch_HomeNumberFallback(t *testing.T) {
	client := new(mockHCPClient)
	candidate := hcp.Customer{ID: "cus_3", HomeNumber: "(415) 555-1234", Email: "sarah@test.com"}
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return([]hcp.Customer{candidate}, nil)
	client.On("FindCustomersByEmail", mock.Anything, mock.Anything).Return([]hcp.Customer{candidate}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)
	assert.Equal(t, Exact, result.Type)
}

func TestMatch_None(t *testing.T) {
	client := new(mockHCPClient)
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return([]hcp.Customer{}, nil)
	client.On("FindCustomersByEmail", mock.Anything, mock.Anything).Return([]hcp.Customer{}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)

	assert.Equal(t, None, result.Type)
	assert.Empty(t, result.CustomerID)
	assert.Nil(t, result.Customer)
}

// Candidates sharing a name but not the contact's fields never beat a
// candidate that matches on one field.
func TestMatch_BestCandidateWins(t *testing.T) {
	client := new(mockHCPClient)
	noMatch := hcp.Customer{ID: "cus_a", MobileNumber: "+14155550000", Email: "a@other.com"}
	partial := hcp.Customer{ID: "cus_b", MobileNumber: "+14159990000", Email: "sarah@test.com"}
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return([]hcp.Customer{noMatch}, nil)
	client.On("FindCustomersByEmail", mock.Anything, mock.Anything).Return([]hcp.Customer{partial}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)

	assert.Equal(t, Partial, result.Type)
	assert.Equal(t, "cus_b", result.CustomerID)
	assert.Len(t, result.Candidates, 2)
}

// Ties break toward the first candidate of the phone lookup; the losers are
// reported so the orchestrator can warn.
func TestMatch_TieBreakPrefersPhoneOrder(t *testing.T) {
	client := new(mockHCPClient)
	first := hcp.Customer{ID: "cus_first", MobileNumber: "+14155551234", Email: "x@other.com"}
	second := hcp.Customer{ID: "cus_second", MobileNumber: "+14155551234", Email: "y@other.com"}
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return([]hcp.Customer{first, second}, nil)
	client.On("FindCustomersByEmail", mock.Anything, mock.Anything).Return([]hcp.Customer{}, nil)

	result, err := NewMatcher(client).Match(context.Background(), testContact)
	require.NoError(t, err)

	assert.Equal(t, Partial, result.Type)
	assert.Equal(t, "cus_first", result.CustomerID)
	assert.Equal(t, []string{"cus_second"}, result.UnchosenTies())
}

func TestMatch_LookupErrorPropagates(t *testing.T) {
	client := new(mockHCPClient)
	apiErr := &hcp.APIError{StatusCode: 503, Message: "down"}
	client.On("FindCustomersByPhone", mock.Anything, mock.Anything).Return(nil, apiErr)

	_, err := NewMatcher(client).Match(context.Background(), testContact)
	require.Error(t, err)

	var ae *hcp.APIError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, 503, ae.StatusCode)
}
