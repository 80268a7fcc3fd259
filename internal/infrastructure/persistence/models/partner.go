package models

import (
	"github.com/agency/backend/internal/domain/partner"
)

// ClientModel is the persistence model for agency clients.
type ClientModel struct {
	AgencyModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Document string `gorm:"type:varchar(50)"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:varchar(300)"`
	Notes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM.
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		AgencyEntity: m.ToDomainAgencyEntity(),
		Name:         m.Name,
		Document:     m.Document,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Client.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainAgencyEntity(c.AgencyEntity)
	m.Name = c.Name
	m.Document = c.Document
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Notes = c.Notes
}

// OperatorModel is the persistence model for wholesale operators.
type OperatorModel struct {
	AgencyModel
	Name            string `gorm:"type:varchar(200);not null;index"`
	ContactName     string `gorm:"type:varchar(200)"`
	Email           string `gorm:"type:varchar(200)"`
	Phone           string `gorm:"type:varchar(50)"`
	DefaultCurrency string `gorm:"type:varchar(8)"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM.
func (OperatorModel) TableName() string {
	return "operators"
}

// ToDomain converts the persistence model to a domain Operator.
func (m *OperatorModel) ToDomain() *partner.Operator {
	return &partner.Operator{
		AgencyEntity:    m.ToDomainAgencyEntity(),
		Name:            m.Name,
		ContactName:     m.ContactName,
		Email:           m.Email,
		Phone:           m.Phone,
		DefaultCurrency: m.DefaultCurrency,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Operator.
func (m *OperatorModel) FromDomain(o *partner.Operator) {
	m.FromDomainAgencyEntity(o.AgencyEntity)
	m.Name = o.Name
	m.ContactName = o.ContactName
	m.Email = o.Email
	m.Phone = o.Phone
	m.DefaultCurrency = o.DefaultCurrency
	m.Notes = o.Notes
}
