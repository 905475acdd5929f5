package match

import (
	"regexp"
	"strings"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// Action is the address resolution outcome.
type Action int

const (
	CreateNew Action = iota
	Reuse
)

func (a Action) String() string {
	if a == Reuse {
		return "reuse"
	}
	return "create_new"
}

// AddressDecision records whether a submitted address should reuse an
// existing service address or create a new one.
type AddressDecision struct {
	Action    Action
	AddressID string
	Score     float64
}

// tokenExpansions maps common address abbreviations to their spoken forms
// so "456 Oak Ave, SF" and "456 Oak Avenue, San Francisco" tokenize
// identically. Both sides of a comparison run through the same table, so
// equality is preserved either way.
var tokenExpansions = map[string][]string{
	"st":   {"street"},
	"ave":  {"avenue"},
	"av":   {"avenue"},
	"blvd": {"boulevard"},
	"rd":   {"road"},
	"dr":   {"drive"},
	"ln":   {"lane"},
	"ct":   {"court"},
	"pl":   {"place"},
	"hwy":  {"highway"},
	"pkwy": {"parkway"},
	"ter":  {"terrace"},
	"apt":  {"apartment"},
	"ste":  {"suite"},
	"fl":   {"floor"},
	"n":    {"north"},
	"s":    {"south"},
	"e":    {"east"},
	"w":    {"west"},
	"sf":   {"san", "francisco"},
	"ca":   {"california"},
	"ny":   {"new", "york"},
	"tx":   {"texas"},
	"wa":   {"washington"},
	"or":   {"oregon"},
	"az":   {"arizona"},
	"nv":   {"nevada"},
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Similarity scores two address strings in [0, 1] by token overlap
// (Jaccard) after normalization. Symmetric; identical normalized strings
// score 1.0; disjoint strings score 0.0.
func Similarity(a, b string) float64 {
	ta := addressTokens(a)
	tb := addressTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inter := 0
	union := len(tb)
	for tok := range ta {
		if tb[tok] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func addressTokens(s string) map[string]bool {
	s = nonAlnumRe.ReplaceAllString(strings.ToLower(s), " ")
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		if expanded, ok := tokenExpansions[tok]; ok {
			for _, e := range expanded {
				tokens[e] = true
			}
			continue
		}
		tokens[tok] = true
	}
	return tokens
}

// ResolveAddress compares a submitted address line against a customer's
// existing service addresses and picks the best one. At or above threshold
// the existing address is reused; below it (or with no existing addresses)
// a new address is created. Pure comparison, no network.
func ResolveAddress(raw string, existing []hcp.Address, threshold float64) AddressDecision {
	decision := AddressDecision{Action: CreateNew}
	if strings.TrimSpace(raw) == "" {
		return decision
	}

	for _, addr := range existing {
		score := Similarity(raw, addr.String())
		if score > decision.Score {
			decision.Score = score
			decision.AddressID = addr.ID
		}
	}

	if decision.Score >= threshold && decision.AddressID != "" {
		decision.Action = Reuse
	} else {
		decision.AddressID = ""
	}
	return decision
}
