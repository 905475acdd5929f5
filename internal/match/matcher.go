// Package match classifies form contacts against existing HCP customers
// and decides whether submitted service addresses are already on file.
package match

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// Type classifies how many of {phone, email} align between the contact and
// the best existing customer record.
type Type int

const (
	None Type = iota
	Partial
	Exact
)

func (t Type) String() string {
	switch t {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// FieldPhone and FieldEmail name the contact fields a candidate matched on.
const (
	FieldPhone = "phone"
	FieldEmail = "email"
)

// Result is the outcome of matching one contact. Candidates retains the
// full deduplicated candidate set, phone-lookup order first, so the caller
// can surface every candidate that was not chosen.
type Result struct {
	Type       Type
	CustomerID string
	Customer   *hcp.Customer
	MatchedOn  []string
	Candidates []hcp.Customer

	// contact is retained for tie inspection only.
	contact form.Contact
}

// MissingField returns the contact field the chosen candidate did NOT match
// on. Only meaningful for a partial match.
func (r *Result) MissingField() string {
	for _, f := range r.MatchedOn {
		if f == FieldPhone {
			return FieldEmail
		}
	}
	return FieldPhone
}

// UnchosenTies returns the ids of every other candidate that matched on the
// same number of fields as the chosen one. Non-empty means the tie-break
// picked silently and a human should review.
func (r *Result) UnchosenTies() []string {
	if r.Customer == nil {
		return nil
	}
	var ties []string
	for _, c := range r.Candidates {
		if c.ID == r.CustomerID {
			continue
		}
		if candidateScore(c, r.contact) == len(r.MatchedOn) {
			ties = append(ties, c.ID)
		}
	}
	return ties
}

// Matcher finds and classifies existing customers for a contact.
type Matcher struct {
	client hcp.Client
}

// NewMatcher creates a Matcher backed by the given HCP client.
func NewMatcher(client hcp.Client) *Matcher {
	return &Matcher{client: client}
}

// Match issues one lookup by phone and one by email, unions the results,
// and classifies the best single-candidate outcome: both fields matched
// beats one field matched beats none. Lookup failures propagate; they are
// never downgraded to a no-match.
func (m *Matcher) Match(ctx context.Context, contact form.Contact) (*Result, error) {
	byPhone, err := m.client.FindCustomersByPhone(ctx, contact.Phone)
	if err != nil {
		return nil, eris.Wrap(err, "match: phone lookup")
	}
	byEmail, err := m.client.FindCustomersByEmail(ctx, contact.Email)
	if err != nil {
		return nil, eris.Wrap(err, "match: email lookup")
	}

	// Union keyed by customer id. Phone results keep their position ahead
	// of email results; the tie-break below relies on this order.
	seen := make(map[string]bool)
	var candidates []hcp.Customer
	for _, c := range append(append([]hcp.Customer{}, byPhone...), byEmail...) {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		candidates = append(candidates, c)
	}

	result := &Result{Type: None, Candidates: candidates, contact: contact}
	best := 0
	for i, c := range candidates {
		score := candidateScore(c, contact)
		if score > best {
			best = score
			result.Customer = &candidates[i]
			result.CustomerID = c.ID
			result.MatchedOn = matchedFields(c, contact)
		}
	}

	switch best {
	case 2:
		result.Type = Exact
	case 1:
		result.Type = Partial
	}

	zap.L().Debug("customer match classified",
		zap.String("type", result.Type.String()),
		zap.Int("candidates", len(candidates)),
		zap.String("customer_id", result.CustomerID),
	)
	return result, nil
}

// candidateScore counts how many of {phone, email} the candidate matches.
func candidateScore(c hcp.Customer, contact form.Contact) int {
	return len(matchedFields(c, contact))
}

func matchedFields(c hcp.Customer, contact form.Contact) []string {
	var fields []string
	if customerPhone(c) == contact.Phone {
		fields = append(fields, FieldPhone)
	}
	if form.NormalizeEmail(c.Email) != "" && form.NormalizeEmail(c.Email) == contact.Email {
		fields = append(fields, FieldEmail)
	}
	return fields
}

// customerPhone canonicalizes the candidate's phone, preferring the mobile
// number and falling back to the home number.
func customerPhone(c hcp.Customer) string {
	if p := form.CanonicalPhone(c.MobileNumber); p != "" {
		return p
	}
	return form.CanonicalPhone(c.HomeNumber)
}
