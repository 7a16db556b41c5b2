package models

import (
	"github.com/gym/backend/internal/domain/client"
	"gorm.io/datatypes"
)

// ClientModel is the persistence model for the Client aggregate
type ClientModel struct {
	AggregateModel
	FirstName string         `gorm:"type:varchar(100);not null"`
	LastName  string         `gorm:"type:varchar(100);not null"`
	Email     string         `gorm:"type:varchar(200);index"`
	Phone     string         `gorm:"type:varchar(50)"`
	Document  string         `gorm:"type:varchar(50)"`
	Notes     string         `gorm:"type:text"`
	Active    bool           `gorm:"not null;default:true"`
	PlanIDs   datatypes.JSON `gorm:"column:plan_ids;not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain Client. A corrupt reference list
// surfaces as an error rather than an empty set.
func (m *ClientModel) ToDomain() (*client.Client, error) {
	planIDs, err := DecodeUUIDList(m.PlanIDs)
	if err != nil {
		return nil, err
	}
	return &client.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Document:          m.Document,
		Notes:             m.Notes,
		Active:            m.Active,
		PlanIDs:           planIDs,
	}, nil
}

// FromDomain populates the model from a domain Client
func (m *ClientModel) FromDomain(c *client.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Document = c.Document
	m.Notes = c.Notes
	m.Active = c.Active
	m.PlanIDs = EncodeUUIDList(c.PlanIDs)
}

// ClientModelFromDomain creates a new persistence model from domain Client
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}
