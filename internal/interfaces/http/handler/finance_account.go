package handler

import (
	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// FinanceAccountHandler handles cash account, opening balance and credit
// account endpoints.
type FinanceAccountHandler struct {
	BaseHandler
	accountService *financeapp.AccountService
}

// NewFinanceAccountHandler creates a new FinanceAccountHandler.
func NewFinanceAccountHandler(accountService *financeapp.AccountService) *FinanceAccountHandler {
	return &FinanceAccountHandler{accountService: accountService}
}

// Create registers a new cash account.
func (h *FinanceAccountHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List returns all cash accounts of the agency.
func (h *FinanceAccountHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// GetByID returns a single cash account.
func (h *FinanceAccountHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// AddOpeningBalance records a per-currency balance snapshot for an account.
func (h *FinanceAccountHandler) AddOpeningBalance(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req financeapp.CreateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	balance, err := h.accountService.AddOpeningBalance(c.Request.Context(), agencyID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, balance)
}

// ListOpeningBalances returns an account's balance snapshots in effective
// date order.
func (h *FinanceAccountHandler) ListOpeningBalances(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	balances, err := h.accountService.ListOpeningBalances(c.Request.Context(), agencyID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balances)
}

// ListCreditAccounts returns stored credit balances, optionally narrowed to
// client or operator holders.
func (h *FinanceAccountHandler) ListCreditAccounts(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	holderType := finance.HolderType(c.Query("holder_type"))
	switch holderType {
	case "", finance.HolderClient, finance.HolderOperator:
	default:
		h.BadRequest(c, "Invalid holder_type, expected client or operator")
		return
	}

	credits, err := h.accountService.ListCreditAccounts(c.Request.Context(), agencyID, holderType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, credits)
}
