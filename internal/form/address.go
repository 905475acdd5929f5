package form

import (
	"regexp"
	"strings"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// Address parse patterns, most structured first:
//
//	"123 Main St, San Francisco, CA 94102"
//	"123 Main St, San Francisco CA 94102"
var (
	addrCommaStateRe = regexp.MustCompile(`^(.+?),\s*(.+?),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	addrStateZipRe   = regexp.MustCompile(`^(.+?),\s*(.+?)\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	zipRe            = regexp.MustCompile(`\b(\d{5}(?:-\d{4})?)\b`)
	trailingStateRe  = regexp.MustCompile(`\b([A-Z]{2})\s*$`)
)

// ParseAddress splits a single-line address into components. Unparseable
// input lands entirely in Street so nothing submitted is lost.
func ParseAddress(raw string) hcp.Address {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return hcp.Address{}
	}

	for _, re := range []*regexp.Regexp{addrCommaStateRe, addrStateZipRe} {
		if m := re.FindStringSubmatch(raw); m != nil {
			return hcp.Address{
				Street: strings.TrimSpace(m[1]),
				City:   strings.TrimSpace(m[2]),
				State:  m[3],
				Zip:    m[4],
			}
		}
	}

	// Work backwards from the zip code.
	var addr hcp.Address
	if zm := zipRe.FindStringSubmatchIndex(raw); zm != nil {
		addr.Zip = raw[zm[2]:zm[3]]
		before := strings.TrimSpace(raw[:zm[0]])
		if sm := trailingStateRe.FindStringSubmatchIndex(before); sm != nil {
			addr.State = before[sm[2]:sm[3]]
			before = strings.TrimSpace(before[:sm[0]])
		}
		parts := strings.Split(before, ",")
		if len(parts) >= 2 {
			addr.Street = strings.TrimSpace(parts[0])
			addr.City = strings.TrimSpace(parts[1])
		} else if p := strings.TrimSpace(parts[0]); p != "" {
			addr.Street = p
		}
	}

	if addr == (hcp.Address{}) {
		addr.Street = raw
	}
	return addr
}
