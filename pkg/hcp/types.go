package hcp

import "fmt"

// Customer is a customer record as returned by the HCP API. The webhook
// holds read-only copies for the duration of one request.
type Customer struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	HomeNumber   string    `json:"home_number"`
	LeadSource   string    `json:"lead_source,omitempty"`
	Addresses    []Address `json:"addresses"`
}

// Address is a customer service address.
type Address struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Street      string `json:"street,omitempty"`
	StreetLine2 string `json:"street_line_2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
}

// String renders the address as a single comparable line.
func (a Address) String() string {
	out := a.Street
	for _, part := range []string{a.StreetLine2, a.City, a.State, a.Zip} {
		if part != "" {
			out += ", " + part
		}
	}
	return out
}

// CustomerRequest is the body for POST /customers.
type CustomerRequest struct {
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name,omitempty"`
	Email                string    `json:"email,omitempty"`
	MobileNumber         string    `json:"mobile_number,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	LeadSource           string    `json:"lead_source,omitempty"`
	Addresses            []Address `json:"addresses,omitempty"`
}

// LineItem is a quote-only service line on a lead. Quantity is always 1 and
// UnitPrice always 0; pricing is filled in by office staff after triage.
type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unit_price"`
}

// LeadRequest is the body for POST /leads.
type LeadRequest struct {
	CustomerID         string     `json:"customer_id"`
	JobType            string     `json:"job_type"`
	AssignedEmployeeID string     `json:"assigned_employee_id,omitempty"`
	LeadSource         string     `json:"lead_source,omitempty"`
	AddressID          string     `json:"address_id,omitempty"`
	Address            *Address   `json:"address,omitempty"`
	LineItems          []LineItem `json:"line_items,omitempty"`
	Note               string     `json:"note,omitempty"`
}

// Lead is the created lead record returned by POST /leads.
type Lead struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	JobType    string `json:"job_type"`
}

// customersResponse wraps the search endpoint result.
type customersResponse struct {
	Customers []Customer `json:"customers"`
}

// addressesResponse wraps the customer addresses endpoint result.
type addressesResponse struct {
	Addresses []Address `json:"addresses"`
}

// APIError is returned when HCP responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hcp: HTTP %d: %s", e.StatusCode, e.Message)
}
