package models

import (
	"github.com/agency/backend/internal/domain/identity"
)

// UserModel is the persistence model for back-office users. Usernames are
// globally unique because login does not carry an agency.
type UserModel struct {
	AgencyModel
	Username     string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(100);not null"`
	DisplayName  string        `gorm:"type:varchar(200)"`
	Role         identity.Role `gorm:"type:varchar(20);not null"`
	Plan         identity.Plan `gorm:"type:varchar(20);not null;default:'basico'"`
	Active       bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		AgencyEntity: m.ToDomainAgencyEntity(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Role:         m.Role,
		Plan:         m.Plan,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAgencyEntity(u.AgencyEntity)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.Plan = u.Plan
	m.Active = u.Active
}
