package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/corebank/ledgerd/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles the money-movement endpoints.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers deposit, withdraw, and transfer routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:accountNumber/deposit", h.deposit)
		accounts.POST("/:accountNumber/withdraw", h.withdraw)
		accounts.POST("/:accountNumber/transfer", h.transfer)
	}
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits an amount to the account. Allowed for every status except closed.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or closed account"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.Deposit(c.Request.Context(), userID, c.Param("accountNumber"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MovementResponse{
		Message:     "Deposit successful",
		NewBalance:  result.NewBalance,
		Transaction: dto.ToTransactionResponse(result.Transaction),
	})
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits an amount from the account. Rejected for closed and blocked accounts and when funds are insufficient.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Invalid amount, closed account, or insufficient funds"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden or blocked account"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.Withdraw(c.Request.Context(), userID, c.Param("accountNumber"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MovementResponse{
		Message:     "Withdrawal successful",
		NewBalance:  result.NewBalance,
		Transaction: dto.ToTransactionResponse(result.Transaction),
	})
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves an amount from the caller's account to a destination account. Both legs commit atomically.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Source account number"
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid amount, closed account, currency mismatch, or insufficient funds"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden or blocked account"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), userID, c.Param("accountNumber"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Message:         "Transfer successful",
		NewFromBalance:  result.NewSourceBalance,
		NewToBalance:    result.NewDestinationBalance,
		FromTransaction: dto.ToTransactionResponse(result.DebitLeg),
		ToTransaction:   dto.ToTransactionResponse(result.CreditLeg),
	})
}
