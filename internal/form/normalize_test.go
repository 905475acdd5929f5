package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "formatted 10 digit",
			input:    "(415) 555-1234",
			expected: "4155551234",
		},
		{
			name:     "already normalized is unchanged",
			input:    "4155551234",
			expected: "4155551234",
		},
		{
			name:     "7 digits completed with default area code",
			input:    "555-1234",
			expected: "4155551234",
		},
		{
			name:    "too few digits",
			input:   "555-123",
			wantErr: true,
		},
		{
			name:    "11 digits rejected",
			input:   "14155551234",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "letters only",
			input:   "call me",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input, "415")
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "phone", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCanonicalPhone(t *testing.T) {
	assert.Equal(t, "4155551234", CanonicalPhone("+14155551234"))
	assert.Equal(t, "4155551234", CanonicalPhone("(415) 555-1234"))
	assert.Equal(t, "", CanonicalPhone("555-1234"))
	assert.Equal(t, "", CanonicalPhone(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "sarah@example.com", NormalizeEmail("  Sarah@Example.COM "))
}

func TestParseName(t *testing.T) {
	tests := []struct {
		input string
		first string
		last  string
	}{
		{"John Smith", "John", "Smith"},
		{"Mary Jane Watson", "Mary Jane", "Watson"},
		{"Prince", "Prince", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := ParseName(tt.input)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}
