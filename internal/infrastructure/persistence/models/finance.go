package models

import (
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptModel is the persistence model for client payment receipts.
type ReceiptModel struct {
	AgencyModel
	BookingID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Number    string    `gorm:"type:varchar(50)"`
	Concept   string    `gorm:"type:text"`
	Date      time.Time `gorm:"not null;index"`

	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Currency        string           `gorm:"type:varchar(8);not null"`
	CounterAmount   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CounterCurrency string           `gorm:"type:varchar(8)"`

	Legs        ReceiptLegList           `gorm:"type:jsonb;default:'[]'"`
	ServiceIDs  UUIDList                 `gorm:"type:jsonb;default:'[]'"`
	Allocations []ReceiptAllocationModel `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM.
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt.
func (m *ReceiptModel) ToDomain() *finance.Receipt {
	allocations := make([]finance.ReceiptAllocation, len(m.Allocations))
	for i, a := range m.Allocations {
		allocations[i] = a.ToDomain()
	}
	return &finance.Receipt{
		AgencyEntity:    m.ToDomainAgencyEntity(),
		BookingID:       m.BookingID,
		ClientID:        m.ClientID,
		Number:          m.Number,
		Concept:         m.Concept,
		Date:            m.Date,
		Amount:          m.Amount,
		Currency:        m.Currency,
		CounterAmount:   m.CounterAmount,
		CounterCurrency: m.CounterCurrency,
		Legs:            m.Legs,
		ServiceIDs:      m.ServiceIDs,
		Allocations:     allocations,
	}
}

// FromDomain populates the persistence model from a domain Receipt.
func (m *ReceiptModel) FromDomain(r *finance.Receipt) {
	m.FromDomainAgencyEntity(r.AgencyEntity)
	m.BookingID = r.BookingID
	m.ClientID = r.ClientID
	m.Number = r.Number
	m.Concept = r.Concept
	m.Date = r.Date
	m.Amount = r.Amount
	m.Currency = r.Currency
	m.CounterAmount = r.CounterAmount
	m.CounterCurrency = r.CounterCurrency
	m.Legs = r.Legs
	m.ServiceIDs = r.ServiceIDs
	m.Allocations = make([]ReceiptAllocationModel, len(r.Allocations))
	for i, a := range r.Allocations {
		m.Allocations[i].FromDomain(m.ID, a)
	}
}

// ReceiptAllocationModel is one explicit per-service portion of a receipt.
// The row ID is persistence-only; the domain allocation has no identity.
type ReceiptAllocationModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountPayment   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentCurrency string          `gorm:"type:varchar(8);not null"`
	AmountService   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ServiceCurrency string          `gorm:"type:varchar(8);not null"`
}

// TableName returns the table name for GORM.
func (ReceiptAllocationModel) TableName() string {
	return "receipt_allocations"
}

// ToDomain converts the allocation row to its domain form.
func (m *ReceiptAllocationModel) ToDomain() finance.ReceiptAllocation {
	return finance.ReceiptAllocation{
		ServiceID:       m.ServiceID,
		AmountPayment:   m.AmountPayment,
		PaymentCurrency: m.PaymentCurrency,
		AmountService:   m.AmountService,
		ServiceCurrency: m.ServiceCurrency,
	}
}

// FromDomain populates the allocation row from its domain form.
func (m *ReceiptAllocationModel) FromDomain(receiptID uuid.UUID, a finance.ReceiptAllocation) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.ReceiptID = receiptID
	m.ServiceID = a.ServiceID
	m.AmountPayment = a.AmountPayment
	m.PaymentCurrency = a.PaymentCurrency
	m.AmountService = a.AmountService
	m.ServiceCurrency = a.ServiceCurrency
}

// InvestmentModel is the persistence model for operator payments and agency
// expenses.
type InvestmentModel struct {
	AgencyModel
	OperatorID *uuid.UUID                 `gorm:"type:uuid;index"`
	BookingID  *uuid.UUID                 `gorm:"type:uuid;index"`
	Category   finance.InvestmentCategory `gorm:"type:varchar(30);not null;index"`
	Concept    string                     `gorm:"type:text"`
	Date       time.Time                  `gorm:"not null;index"`

	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency  string          `gorm:"type:varchar(8);not null"`
	Method    string          `gorm:"type:varchar(50)"`
	AccountID *uuid.UUID      `gorm:"type:uuid;index"`

	ServiceIDs  UUIDList                    `gorm:"type:jsonb;default:'[]'"`
	Allocations []InvestmentAllocationModel `gorm:"foreignKey:InvestmentID;references:ID"`
}

// TableName returns the table name for GORM.
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment.
func (m *InvestmentModel) ToDomain() *finance.Investment {
	allocations := make([]finance.InvestmentAllocation, len(m.Allocations))
	for i, a := range m.Allocations {
		allocations[i] = a.ToDomain()
	}
	return &finance.Investment{
		AgencyEntity: m.ToDomainAgencyEntity(),
		OperatorID:   m.OperatorID,
		BookingID:    m.BookingID,
		Category:     m.Category,
		Concept:      m.Concept,
		Date:         m.Date,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Method:       m.Method,
		AccountID:    m.AccountID,
		ServiceIDs:   m.ServiceIDs,
		Allocations:  allocations,
	}
}

// FromDomain populates the persistence model from a domain Investment.
func (m *InvestmentModel) FromDomain(inv *finance.Investment) {
	m.FromDomainAgencyEntity(inv.AgencyEntity)
	m.OperatorID = inv.OperatorID
	m.BookingID = inv.BookingID
	m.Category = inv.Category
	m.Concept = inv.Concept
	m.Date = inv.Date
	m.Amount = inv.Amount
	m.Currency = inv.Currency
	m.Method = inv.Method
	m.AccountID = inv.AccountID
	m.ServiceIDs = inv.ServiceIDs
	m.Allocations = make([]InvestmentAllocationModel, len(inv.Allocations))
	for i, a := range inv.Allocations {
		m.Allocations[i].FromDomain(m.ID, a)
	}
}

// InvestmentAllocationModel is one explicit per-service portion of an
// investment. Written atomically with its parent row.
type InvestmentAllocationModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvestmentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountPayment   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentCurrency string          `gorm:"type:varchar(8);not null"`
	AmountService   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ServiceCurrency string          `gorm:"type:varchar(8);not null"`
}

// TableName returns the table name for GORM.
func (InvestmentAllocationModel) TableName() string {
	return "investment_allocations"
}

// ToDomain converts the allocation row to its domain form.
func (m *InvestmentAllocationModel) ToDomain() finance.InvestmentAllocation {
	return finance.InvestmentAllocation{
		ID:              m.ID,
		ServiceID:       m.ServiceID,
		AmountPayment:   m.AmountPayment,
		PaymentCurrency: m.PaymentCurrency,
		AmountService:   m.AmountService,
		ServiceCurrency: m.ServiceCurrency,
	}
}

// FromDomain populates the allocation row from its domain form.
func (m *InvestmentAllocationModel) FromDomain(investmentID uuid.UUID, a finance.InvestmentAllocation) {
	m.ID = a.ID
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.InvestmentID = investmentID
	m.ServiceID = a.ServiceID
	m.AmountPayment = a.AmountPayment
	m.PaymentCurrency = a.PaymentCurrency
	m.AmountService = a.AmountService
	m.ServiceCurrency = a.ServiceCurrency
}

// OperatorDueModel is the persistence model for scheduled operator dues.
type OperatorDueModel struct {
	AgencyModel
	OperatorID uuid.UUID         `gorm:"type:uuid;not null;index"`
	BookingID  *uuid.UUID        `gorm:"type:uuid;index"`
	Concept    string            `gorm:"type:text"`
	DueDate    time.Time         `gorm:"not null;index"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Currency   string            `gorm:"type:varchar(8);not null"`
	Status     finance.DueStatus `gorm:"type:varchar(20);not null;default:'pendiente';index"`
}

// TableName returns the table name for GORM.
func (OperatorDueModel) TableName() string {
	return "operator_dues"
}

// ToDomain converts the persistence model to a domain OperatorDue.
func (m *OperatorDueModel) ToDomain() *finance.OperatorDue {
	return &finance.OperatorDue{
		AgencyEntity: m.ToDomainAgencyEntity(),
		OperatorID:   m.OperatorID,
		BookingID:    m.BookingID,
		Concept:      m.Concept,
		DueDate:      m.DueDate,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Status:       m.Status,
	}
}

// FromDomain populates the persistence model from a domain OperatorDue.
func (m *OperatorDueModel) FromDomain(due *finance.OperatorDue) {
	m.FromDomainAgencyEntity(due.AgencyEntity)
	m.OperatorID = due.OperatorID
	m.BookingID = due.BookingID
	m.Concept = due.Concept
	m.DueDate = due.DueDate
	m.Amount = due.Amount
	m.Currency = due.Currency
	m.Status = due.Status
}

// ClientDueModel is the persistence model for scheduled client payments.
type ClientDueModel struct {
	AgencyModel
	ClientID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	BookingID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Concept   string            `gorm:"type:text"`
	DueDate   time.Time         `gorm:"not null;index"`
	Amount    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Currency  string            `gorm:"type:varchar(8);not null"`
	Status    finance.DueStatus `gorm:"type:varchar(20);not null;default:'pendiente';index"`
}

// TableName returns the table name for GORM.
func (ClientDueModel) TableName() string {
	return "client_dues"
}

// ToDomain converts the persistence model to a domain ClientDue.
func (m *ClientDueModel) ToDomain() *finance.ClientDue {
	return &finance.ClientDue{
		AgencyEntity: m.ToDomainAgencyEntity(),
		ClientID:     m.ClientID,
		BookingID:    m.BookingID,
		Concept:      m.Concept,
		DueDate:      m.DueDate,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Status:       m.Status,
	}
}

// FromDomain populates the persistence model from a domain ClientDue.
func (m *ClientDueModel) FromDomain(due *finance.ClientDue) {
	m.FromDomainAgencyEntity(due.AgencyEntity)
	m.ClientID = due.ClientID
	m.BookingID = due.BookingID
	m.Concept = due.Concept
	m.DueDate = due.DueDate
	m.Amount = due.Amount
	m.Currency = due.Currency
	m.Status = due.Status
}

// FinanceAccountModel is the persistence model for cashbox accounts.
type FinanceAccountModel struct {
	AgencyModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM.
func (FinanceAccountModel) TableName() string {
	return "finance_accounts"
}

// ToDomain converts the persistence model to a domain FinanceAccount.
func (m *FinanceAccountModel) ToDomain() *finance.FinanceAccount {
	return &finance.FinanceAccount{
		AgencyEntity: m.ToDomainAgencyEntity(),
		Name:         m.Name,
		Description:  m.Description,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain FinanceAccount.
func (m *FinanceAccountModel) FromDomain(account *finance.FinanceAccount) {
	m.FromDomainAgencyEntity(account.AgencyEntity)
	m.Name = account.Name
	m.Description = account.Description
	m.Active = account.Active
}

// OpeningBalanceModel is the persistence model for (account, currency)
// balance snapshots.
type OpeningBalanceModel struct {
	AgencyModel
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Currency      string          `gorm:"type:varchar(8);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EffectiveDate time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM.
func (OpeningBalanceModel) TableName() string {
	return "opening_balances"
}

// ToDomain converts the persistence model to a domain OpeningBalance.
func (m *OpeningBalanceModel) ToDomain() *finance.OpeningBalance {
	return &finance.OpeningBalance{
		AgencyEntity:  m.ToDomainAgencyEntity(),
		AccountID:     m.AccountID,
		Currency:      m.Currency,
		Amount:        m.Amount,
		EffectiveDate: m.EffectiveDate,
	}
}

// FromDomain populates the persistence model from a domain OpeningBalance.
func (m *OpeningBalanceModel) FromDomain(balance *finance.OpeningBalance) {
	m.FromDomainAgencyEntity(balance.AgencyEntity)
	m.AccountID = balance.AccountID
	m.Currency = balance.Currency
	m.Amount = balance.Amount
	m.EffectiveDate = balance.EffectiveDate
}

// CreditAccountModel is the persistence model for per-holder credit
// balances. The aggregation code only ever reads these rows.
type CreditAccountModel struct {
	AgencyModel
	HolderType finance.HolderType `gorm:"type:varchar(20);not null;index:idx_credit_holder"`
	HolderID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_credit_holder"`
	Currency   string             `gorm:"type:varchar(8);not null"`
	Balance    decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM.
func (CreditAccountModel) TableName() string {
	return "credit_accounts"
}

// ToDomain converts the persistence model to a domain CreditAccount.
func (m *CreditAccountModel) ToDomain() *finance.CreditAccount {
	return &finance.CreditAccount{
		AgencyEntity: m.ToDomainAgencyEntity(),
		HolderType:   m.HolderType,
		HolderID:     m.HolderID,
		Currency:     m.Currency,
		Balance:      m.Balance,
	}
}
