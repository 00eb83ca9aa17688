package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the account and debit card API on r. Account number
// and customer lookups live under their own prefixes so they do not collide
// with /v1/accounts/:id.
func RegisterRoutes(r *gin.Engine, accounts *AccountHandler, cards *DebitCardHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "account-service"})
	})

	v1 := r.Group("/v1")

	accountRoutes := v1.Group("/accounts")
	accountRoutes.POST("", accounts.CreateAccount)
	accountRoutes.GET("/:id", accounts.GetAccount)
	accountRoutes.PATCH("/:id", accounts.PatchAccount)
	accountRoutes.DELETE("/:id", accounts.DeleteAccount)

	numberRoutes := v1.Group("/account-numbers")
	numberRoutes.GET("/:accountNumber", accounts.GetAccountByNumber)
	numberRoutes.GET("/:accountNumber/balance", accounts.GetBalanceByNumber)

	v1.GET("/customers/:customerId/accounts", accounts.ListCustomerAccounts)

	cardRoutes := v1.Group("/debit-cards")
	cardRoutes.POST("", cards.CreateDebitCard)
	cardRoutes.GET("/:id", cards.GetDebitCard)
	cardRoutes.POST("/:id/associations", cards.AssociateAccount)
	cardRoutes.GET("/:id/primary-balance", cards.GetPrimaryAccountBalance)
}
