package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/middleware"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	PatchAccount(context.Context, cqrs.PatchAccountCommand) (*models.Account, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.AccountView, error)
	GetAccountByNumber(context.Context, cqrs.GetAccountByNumberQuery) (*models.AccountView, error)
	ListAccountsByCustomer(context.Context, cqrs.ListAccountsQuery) ([]*models.AccountView, error)
	GetBalanceByNumber(context.Context, cqrs.GetAccountByNumberQuery) (*models.BalanceView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// CreateAccountRequest leaves accountType unchecked here; an unknown value is
// reported by the eligibility checks with its own message.
type CreateAccountRequest struct {
	AccountType    string                 `json:"accountType"`
	CustomerID     string                 `json:"customerId" validate:"required"`
	InitialBalance *decimal.Decimal       `json:"initialBalance" validate:"required"`
	Holders        []models.AccountMember `json:"holders" validate:"omitempty,dive"`
	Signers        []models.AccountMember `json:"signers" validate:"omitempty,dive"`
	TermInMonths   *int                   `json:"termInMonths" validate:"omitempty,gt=0"`
}

type PatchAccountRequest struct {
	Balance          *decimal.Decimal `json:"balance"`
	MonthlyMovements *int             `json:"monthlyMovements" validate:"omitempty,gte=0"`
	Status           *string          `json:"status"`
}

type ListAccountsResponse struct {
	Accounts []*models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		AccountType:    req.AccountType,
		CustomerID:     req.CustomerID,
		InitialBalance: *req.InitialBalance,
		Holders:        req.Holders,
		Signers:        req.Signers,
		TermInMonths:   req.TermInMonths,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewAccountView(account))
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: c.Param("id")})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) GetAccountByNumber(c *gin.Context) {
	view, err := h.queries.GetAccountByNumber(c.Request.Context(), cqrs.GetAccountByNumberQuery{
		AccountNumber: c.Param("accountNumber"),
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) GetBalanceByNumber(c *gin.Context) {
	balance, err := h.queries.GetBalanceByNumber(c.Request.Context(), cqrs.GetAccountByNumberQuery{
		AccountNumber: c.Param("accountNumber"),
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *AccountHandler) ListCustomerAccounts(c *gin.Context) {
	views, err := h.queries.ListAccountsByCustomer(c.Request.Context(), cqrs.ListAccountsQuery{
		CustomerID: c.Param("customerId"),
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) PatchAccount(c *gin.Context) {
	var req PatchAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cmd := cqrs.PatchAccountCommand{
		AccountID:        c.Param("id"),
		Balance:          req.Balance,
		MonthlyMovements: req.MonthlyMovements,
	}
	if req.Status != nil {
		status, ok := models.ParseAccountStatus(*req.Status)
		if !ok {
			middleware.RespondWithValidationError(c, []middleware.ValidationError{{
				Field:   "status",
				Message: "Value must be one of: ACTIVE|INACTIVE",
				Type:    "oneof",
			}})
			return
		}
		cmd.Status = &status
	}

	account, err := h.commands.PatchAccount(c.Request.Context(), cmd)
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAccountView(account))
}

// DeleteAccount deactivates the account; it stays readable afterwards.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{AccountID: c.Param("id")})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
