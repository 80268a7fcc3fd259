package models

import (
	"time"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AgencyModel provides the common persistence fields for agency-scoped
// records. It maps to the domain's AgencyEntity.
type AgencyModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	AgencyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// ToDomainAgencyEntity converts the common fields to the domain form.
func (m *AgencyModel) ToDomainAgencyEntity() shared.AgencyEntity {
	return shared.AgencyEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AgencyID:  m.AgencyID,
		CreatedBy: m.CreatedBy,
	}
}

// FromDomainAgencyEntity populates the common fields from the domain form.
func (m *AgencyModel) FromDomainAgencyEntity(e shared.AgencyEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.AgencyID = e.AgencyID
	m.CreatedBy = e.CreatedBy
}
