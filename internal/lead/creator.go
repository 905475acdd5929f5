package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/config"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/match"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// Stage names the step of the create workflow a request is in. A failed
// result carries the stage so the caller knows exactly where it died.
type Stage string

const (
	StageNormalizing      Stage = "normalizing"
	StageMatching         Stage = "matching"
	StageResolvingAddress Stage = "resolving_address"
	StageAssembling       Stage = "assembling"
	StageCreating         Stage = "creating"
)

// Result is the structured outcome of one submission. On failure it still
// reports any artifacts created before the failing call, since there is no
// rollback: a customer created before a failed lead create stays in HCP and
// must be surfaced for manual cleanup.
type Result struct {
	Success         bool     `json:"success"`
	CustomerID      string   `json:"customer_id,omitempty"`
	AddressID       string   `json:"address_id,omitempty"`
	LeadID          string   `json:"lead_id,omitempty"`
	MatchType       string   `json:"match_type,omitempty"`
	CustomerCreated bool     `json:"customer_created,omitempty"`
	AddressCreated  bool     `json:"address_created,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Message         string   `json:"message,omitempty"`
	FailedStage     Stage    `json:"failed_stage,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Creator runs the full submission-to-lead workflow:
// normalize -> match -> resolve address -> assemble -> create.
type Creator struct {
	client  hcp.Client
	matcher *match.Matcher
	cfg     config.LeadConfig
}

// NewCreator builds a Creator. The fixed employee id and lead source come
// from cfg and are attached to every lead.
func NewCreator(client hcp.Client, cfg config.LeadConfig) *Creator {
	return &Creator{
		client:  client,
		matcher: match.NewMatcher(client),
		cfg:     cfg,
	}
}

// Create processes one parsed submission end to end. The returned Result is
// always non-nil; when err is non-nil the Result identifies the failed
// stage and any artifacts already created.
func (c *Creator) Create(ctx context.Context, sub *form.Submission) (*Result, error) {
	res := &Result{}

	// Normalizing
	contact, err := form.NewContact(sub, c.cfg.DefaultAreaCode)
	if err != nil {
		return c.fail(res, StageNormalizing, err)
	}
	log := zap.L().With(zap.String("email", contact.Email))

	// Matching
	mr, err := c.matcher.Match(ctx, contact)
	if err != nil {
		return c.fail(res, StageMatching, err)
	}
	res.MatchType = mr.Type.String()

	if ties := mr.UnchosenTies(); len(ties) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"ambiguous match: candidates %s matched equally well and were not chosen",
			strings.Join(ties, ", ")))
	}

	customer, err := c.chooseCustomer(ctx, contact, sub, mr, res)
	if err != nil {
		return c.fail(res, StageMatching, err)
	}
	res.CustomerID = customer.ID
	log = log.With(zap.String("customer_id", customer.ID))

	// ResolvingAddress
	if err := c.resolveAddress(ctx, sub, contact, customer, res); err != nil {
		return c.fail(res, StageResolvingAddress, err)
	}

	// Assembling
	lineItems, warns := BuildLineItems(sub.ServiceDetails, sub.RequestDetails)
	res.Warnings = append(res.Warnings, warns...)
	jobType, warns := JobType(sub.ServiceNeeded)
	res.Warnings = append(res.Warnings, warns...)
	note := BuildNote(sub, res.MatchType, res.Warnings)

	// Creating
	created, err := c.client.CreateLead(ctx, hcp.LeadRequest{
		CustomerID:         customer.ID,
		JobType:            jobType,
		AssignedEmployeeID: c.cfg.EmployeeID,
		LeadSource:         c.cfg.Source,
		AddressID:          res.AddressID,
		LineItems:          lineItems,
		Note:               note,
	})
	if err != nil {
		return c.fail(res, StageCreating, err)
	}

	res.Success = true
	res.LeadID = created.ID
	res.Message = fmt.Sprintf("lead created (match type: %s)", res.MatchType)
	log.Info("lead created",
		zap.String("lead_id", created.ID),
		zap.String("match_type", res.MatchType),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

// chooseCustomer applies the match policy: exact matches are reused;
// partial matches branch on the submitter's declared customer type; no
// match creates a new customer.
func (c *Creator) chooseCustomer(ctx context.Context, contact form.Contact, sub *form.Submission, mr *match.Result, res *Result) (*hcp.Customer, error) {
	switch mr.Type {
	case match.Exact:
		return mr.Customer, nil

	case match.Partial:
		if sub.CustomerType == form.CustomerTypeExisting {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"partial match: %s did not match customer %s; verify this is the right customer",
				mr.MissingField(), mr.CustomerID))
			return mr.Customer, nil
		}
		// Declared new (or unspecified): honor the declaration but flag
		// the near-duplicate for manual review.
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"submitter declared %s customer, but existing customer %s matched on %s; review and merge if duplicate",
			sub.CustomerType, mr.CustomerID, strings.Join(mr.MatchedOn, " and ")))
		return c.createCustomer(ctx, contact, sub, res)

	default:
		return c.createCustomer(ctx, contact, sub, res)
	}
}

func (c *Creator) createCustomer(ctx context.Context, contact form.Contact, sub *form.Submission, res *Result) (*hcp.Customer, error) {
	customer, err := c.client.CreateCustomer(ctx, hcp.CustomerRequest{
		FirstName:            contact.FirstName,
		LastName:             contact.LastName,
		Email:                contact.Email,
		MobileNumber:         "+1" + contact.Phone,
		NotificationsEnabled: sub.SMSConsent,
		LeadSource:           c.cfg.Source,
	})
	if err != nil {
		return nil, err
	}
	res.CustomerCreated = true
	return customer, nil
}

// resolveAddress decides reuse-vs-create for the submitted address and
// performs the create when needed. A just-created customer has no addresses
// on file, so resolution is skipped and the address is always created.
func (c *Creator) resolveAddress(ctx context.Context, sub *form.Submission, contact form.Contact, customer *hcp.Customer, res *Result) error {
	if !sub.HasAddress() {
		return nil
	}

	if !res.CustomerCreated {
		existing := customer.Addresses
		if len(existing) == 0 {
			fetched, err := c.client.GetCustomerAddresses(ctx, customer.ID)
			if err != nil {
				return err
			}
			existing = fetched
		}

		decision := match.ResolveAddress(contact.RawAddress, existing, c.threshold())
		if decision.Action == match.Reuse {
			res.AddressID = decision.AddressID
			zap.L().Debug("reusing existing address",
				zap.String("address_id", decision.AddressID),
				zap.Float64("score", decision.Score),
			)
			return nil
		}
		if len(existing) > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"submitted address did not match any existing service address (best score %.2f); creating a new one",
				decision.Score))
		}
	}

	created, err := c.client.CreateAddress(ctx, customer.ID, c.serviceAddress(sub))
	if err != nil {
		return err
	}
	res.AddressID = created.ID
	res.AddressCreated = true
	return nil
}

// serviceAddress builds the address record from the submitted components,
// applying the configured default state and US country.
func (c *Creator) serviceAddress(sub *form.Submission) hcp.Address {
	state := sub.State
	if state == "" {
		state = c.cfg.DefaultState
	}
	return hcp.Address{
		Type:        "service",
		Street:      sub.Street,
		StreetLine2: sub.StreetLine2,
		City:        sub.City,
		State:       state,
		Zip:         sub.Zip,
		Country:     "US",
	}
}

func (c *Creator) threshold() float64 {
	if c.cfg.SimilarityThreshold > 0 {
		return c.cfg.SimilarityThreshold
	}
	return 0.8
}

// fail finalizes a failed result, naming the stage and anything already
// created upstream so orphaned records are never silent.
func (c *Creator) fail(res *Result, stage Stage, err error) (*Result, error) {
	res.Success = false
	res.FailedStage = stage
	res.Error = err.Error()

	var created []string
	if res.CustomerCreated {
		created = append(created, "customer "+res.CustomerID)
	}
	if res.AddressCreated {
		created = append(created, "address "+res.AddressID)
	}
	if len(created) > 0 {
		res.Message = fmt.Sprintf("failed at %s; already created: %s (no rollback performed)",
			stage, strings.Join(created, ", "))
	} else {
		res.Message = fmt.Sprintf("failed at %s; nothing was created", stage)
	}

	zap.L().Error("lead creation failed",
		zap.String("stage", string(stage)),
		zap.String("customer_id", res.CustomerID),
		zap.Bool("customer_created", res.CustomerCreated),
		zap.Error(err),
	)
	return res, eris.Wrap(err, fmt.Sprintf("lead: %s", stage))
}
