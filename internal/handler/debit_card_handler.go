package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/middleware"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/gin-gonic/gin"
)

type DebitCardCommander interface {
	CreateDebitCard(context.Context, cqrs.CreateDebitCardCommand) (*models.DebitCard, error)
	AssociateAccount(context.Context, cqrs.AssociateDebitCardCommand) (*models.DebitCard, error)
}

type DebitCardQuerier interface {
	GetDebitCard(context.Context, cqrs.GetDebitCardQuery) (*models.DebitCardView, error)
	GetPrimaryAccountBalance(context.Context, cqrs.GetPrimaryBalanceQuery) (*models.BalanceView, error)
}

type DebitCardHandler struct {
	commands DebitCardCommander
	queries  DebitCardQuerier
}

type DebitCardAccountRequest struct {
	AccountID string `json:"accountId" validate:"required"`
}

func NewDebitCardHandler(commands DebitCardCommander, queries DebitCardQuerier) *DebitCardHandler {
	return &DebitCardHandler{commands: commands, queries: queries}
}

func (h *DebitCardHandler) CreateDebitCard(c *gin.Context) {
	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	card, err := h.commands.CreateDebitCard(c.Request.Context(), cqrs.CreateDebitCardCommand{AccountID: req.AccountID})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewDebitCardView(card))
}

func (h *DebitCardHandler) AssociateAccount(c *gin.Context) {
	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	card, err := h.commands.AssociateAccount(c.Request.Context(), cqrs.AssociateDebitCardCommand{
		DebitCardID: c.Param("id"),
		AccountID:   req.AccountID,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewDebitCardView(card))
}

func (h *DebitCardHandler) GetDebitCard(c *gin.Context) {
	view, err := h.queries.GetDebitCard(c.Request.Context(), cqrs.GetDebitCardQuery{DebitCardID: c.Param("id")})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *DebitCardHandler) GetPrimaryAccountBalance(c *gin.Context) {
	balance, err := h.queries.GetPrimaryAccountBalance(c.Request.Context(), cqrs.GetPrimaryBalanceQuery{DebitCardID: c.Param("id")})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func bindAccountRequest(c *gin.Context) (*DebitCardAccountRequest, bool) {
	var req DebitCardAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return nil, false
	}
	return &req, true
}
