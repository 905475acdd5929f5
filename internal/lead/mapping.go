// Package lead assembles HCP leads from parsed form submissions and
// orchestrates the create workflow.
package lead

import (
	"fmt"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// serviceDetailMapping translates the form's "Service Details" selections
// into the service names configured in HCP. Read-only; safe to share across
// concurrent requests.
var serviceDetailMapping = map[string]string{
	"Toilets or Bidets":       "Toilet Repair & Replacement",
	"Garbage Disposal":        "Garbage Disposal Service",
	"Plumbing Fixtures":       "Faucet & Fixture Service",
	"Water Heater":            "Water Heater Service",
	"Boilers / Combi-Boilers": "Boiler & Hydronics Service",
	"Steam / Sauna":           "Steam & Sauna Service",
	"Other Plumbing":          "Other Plumbing Service",
	"Other Heating & HVAC":    "Other Heating Service",
}

// jobTypeMapping translates the form's "Service Needed" answer into an HCP
// job type.
var jobTypeMapping = map[string]string{
	"New Installation":      "Plumbing Installation",
	"Service or Repair":     "Plumbing Demand Maintenance",
	"Renovation or Remodel": "Plumbing Estimate",
}

// defaultJobType is used when the submitted value has no mapping.
const defaultJobType = "Plumbing Demand Maintenance"

// BuildLineItems maps the selected service details to quote-only line
// items. Unrecognized selections are never dropped: they get a generic
// description carrying the raw value, plus a warning for office review.
// The free-text request details ride on the first line item.
func BuildLineItems(details []string, requestDetails string) ([]hcp.LineItem, []string) {
	if len(details) == 0 {
		return nil, nil
	}

	var warnings []string
	items := make([]hcp.LineItem, 0, len(details))
	for i, detail := range details {
		name, ok := serviceDetailMapping[detail]
		if !ok {
			name = fmt.Sprintf("General Service Request (%s)", detail)
			warnings = append(warnings, fmt.Sprintf("unmapped service value %q", detail))
		}
		item := hcp.LineItem{
			Name:      name,
			Kind:      "labor",
			Quantity:  1,
			UnitPrice: 0,
		}
		if i == 0 && requestDetails != "" {
			item.Description = requestDetails
		}
		items = append(items, item)
	}
	return items, warnings
}

// JobType maps the "Service Needed" answer to an HCP job type, falling back
// to the default with a warning when the value is unrecognized.
func JobType(serviceNeeded string) (string, []string) {
	if serviceNeeded == "" {
		return defaultJobType, nil
	}
	if jt, ok := jobTypeMapping[serviceNeeded]; ok {
		return jt, nil
	}
	return defaultJobType, []string{fmt.Sprintf("unmapped service value %q, using job type %q", serviceNeeded, defaultJobType)}
}
