package client

import (
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// Client is a gym member. It is the aggregate root for profile data and for the
// client-side half of the client/plan association.
type Client struct {
	shared.BaseAggregateRoot
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Document  string
	Notes     string
	Active    bool
	PlanIDs   []uuid.UUID // ordered set, maintained by the association manager
}

// NewClient creates an active client with no plan references
func NewClient(firstName, lastName, email, phone string) (*Client, error) {
	if err := validateName(firstName, "first name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "last name"); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	c := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             email,
		Phone:             strings.TrimSpace(phone),
		Active:            true,
		PlanIDs:           make([]uuid.UUID, 0),
	}
	return c, nil
}

// FullName returns "first last"
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// UpdateProfile replaces the contact fields
func (c *Client) UpdateProfile(firstName, lastName, email, phone, document, notes string) error {
	if err := validateName(firstName, "first name"); err != nil {
		return err
	}
	if err := validateName(lastName, "last name"); err != nil {
		return err
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return err
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Document = strings.TrimSpace(document)
	c.Notes = notes
	c.IncrementVersion()
	return nil
}

// Activate marks the client as active
func (c *Client) Activate() {
	if c.Active {
		return
	}
	c.Active = true
	c.IncrementVersion()
}

// Deactivate marks the client as inactive
func (c *Client) Deactivate() {
	if !c.Active {
		return
	}
	c.Active = false
	c.IncrementVersion()
}

// HasPlan reports whether planID is in the reference set
func (c *Client) HasPlan(planID uuid.UUID) bool {
	return slices.Contains(c.PlanIDs, planID)
}

// AddPlan appends planID if absent. Returns false when nothing changed.
func (c *Client) AddPlan(planID uuid.UUID) bool {
	if c.HasPlan(planID) {
		return false
	}
	c.PlanIDs = append(c.PlanIDs, planID)
	c.IncrementVersion()
	return true
}

// RemovePlan drops planID if present. Returns false when nothing changed.
func (c *Client) RemovePlan(planID uuid.UUID) bool {
	idx := slices.Index(c.PlanIDs, planID)
	if idx < 0 {
		return false
	}
	c.PlanIDs = slices.Delete(c.PlanIDs, idx, idx+1)
	c.IncrementVersion()
	return true
}

// OwnsPlans reports whether any plan reference remains
func (c *Client) OwnsPlans() bool {
	return len(c.PlanIDs) > 0
}

func validateName(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("%s cannot be empty", field)
	}
	if len(name) > 100 {
		return shared.NewValidationError("%s cannot exceed 100 characters", field)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewValidationError("invalid email address %q", email)
	}
	return nil
}
