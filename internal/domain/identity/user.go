package identity

import (
	"context"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Role is the back-office role of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAgent
}

// Plan is the agency's subscription tier. Financial reports are gated behind
// the pro plan.
type Plan string

const (
	PlanBasic Plan = "basico"
	PlanPro   Plan = "pro"
)

// IsValid reports whether the plan is known.
func (p Plan) IsValid() bool {
	return p == PlanBasic || p == PlanPro
}

// Allows reports whether this plan covers the required one.
func (p Plan) Allows(required Plan) bool {
	if required == PlanBasic {
		return p.IsValid()
	}
	return p == PlanPro
}

// User is a back-office user of one agency.
type User struct {
	shared.AgencyEntity
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	Plan         Plan
	Active       bool
}

// NewUser creates an active user with a hashed password.
func NewUser(agencyID uuid.UUID, username, password, displayName string, role Role, plan Plan) (*User, error) {
	if username == "" || !role.IsValid() || !plan.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
		Plan:         plan,
		Active:       true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Repository persists users.
type Repository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
