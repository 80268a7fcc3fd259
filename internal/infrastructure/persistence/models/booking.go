package models

import (
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingModel is the persistence model for client bookings.
type BookingModel struct {
	AgencyModel
	ClientID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Reference    string              `gorm:"type:varchar(50);index"`
	Title        string              `gorm:"type:varchar(200);not null"`
	Status       booking.Status      `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	QuoteStatus  booking.QuoteStatus `gorm:"type:varchar(20);not null;index"`
	CreationDate time.Time           `gorm:"not null;index"`
	Notes        string              `gorm:"type:text"`

	CardInterest         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CardInterestTaxable  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CardInterestVAT      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CardInterestCurrency string          `gorm:"type:varchar(8)"`

	Services []TravelServiceModel `gorm:"foreignKey:BookingID;references:ID"`
}

// TableName returns the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking.
func (m *BookingModel) ToDomain() *booking.Booking {
	services := make([]booking.TravelService, len(m.Services))
	for i, s := range m.Services {
		services[i] = *s.ToDomain()
	}
	return &booking.Booking{
		AgencyEntity:         m.ToDomainAgencyEntity(),
		ClientID:             m.ClientID,
		Reference:            m.Reference,
		Title:                m.Title,
		Status:               m.Status,
		QuoteStatus:          m.QuoteStatus,
		CreationDate:         m.CreationDate,
		Notes:                m.Notes,
		CardInterest:         m.CardInterest,
		CardInterestTaxable:  m.CardInterestTaxable,
		CardInterestVAT:      m.CardInterestVAT,
		CardInterestCurrency: m.CardInterestCurrency,
		Services:             services,
	}
}

// FromDomain populates the persistence model from a domain Booking. The
// services are persisted through their own repository, not through here.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainAgencyEntity(b.AgencyEntity)
	m.ClientID = b.ClientID
	m.Reference = b.Reference
	m.Title = b.Title
	m.Status = b.Status
	m.QuoteStatus = b.QuoteStatus
	m.CreationDate = b.CreationDate
	m.Notes = b.Notes
	m.CardInterest = b.CardInterest
	m.CardInterestTaxable = b.CardInterestTaxable
	m.CardInterestVAT = b.CardInterestVAT
	m.CardInterestCurrency = b.CardInterestCurrency
}

// TravelServiceModel is the persistence model for sellable items inside a
// booking.
type TravelServiceModel struct {
	AgencyModel
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;index"`

	Description string          `gorm:"type:varchar(300);not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(8);not null"`

	DepartureDate *time.Time `gorm:"index"`
	ReturnDate    *time.Time
}

// TableName returns the table name for GORM.
func (TravelServiceModel) TableName() string {
	return "travel_services"
}

// ToDomain converts the persistence model to a domain TravelService.
func (m *TravelServiceModel) ToDomain() *booking.TravelService {
	return &booking.TravelService{
		AgencyEntity:  m.ToDomainAgencyEntity(),
		BookingID:     m.BookingID,
		OperatorID:    m.OperatorID,
		Description:   m.Description,
		SalePrice:     m.SalePrice,
		CostPrice:     m.CostPrice,
		Currency:      m.Currency,
		DepartureDate: m.DepartureDate,
		ReturnDate:    m.ReturnDate,
	}
}

// FromDomain populates the persistence model from a domain TravelService.
func (m *TravelServiceModel) FromDomain(svc *booking.TravelService) {
	m.FromDomainAgencyEntity(svc.AgencyEntity)
	m.BookingID = svc.BookingID
	m.OperatorID = svc.OperatorID
	m.Description = svc.Description
	m.SalePrice = svc.SalePrice
	m.CostPrice = svc.CostPrice
	m.Currency = svc.Currency
	m.DepartureDate = svc.DepartureDate
	m.ReturnDate = svc.ReturnDate
}
