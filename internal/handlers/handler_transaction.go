package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles the transaction log endpoints.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers transaction log routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listRecentTransactions)
		transactions.GET("/taxes", h.listTaxTransactions)
		transactions.POST("/taxes", h.createTaxTransactions)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// listRecentTransactions godoc
// @Summary List recent transactions
// @Description Retrieves the caller's transactions across all accounts, most-recent-first.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (default 10)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listRecentTransactions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transactionService.ListRecentTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listTaxTransactions godoc
// @Summary List tax transactions
// @Description Retrieves the caller's tax records: transactions typed tax or whose description mentions tax.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (default 10)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/taxes [get]
func (h *transactionHandler) listTaxTransactions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	txns, err := h.transactionService.ListTaxTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// createTaxTransactions godoc
// @Summary Record tax transactions
// @Description Records one or more tax charges against users. Admin only. Amounts are stored negated; records may be backdated.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   taxes body dto.CreateTaxBulkRequest true "Tax charges"
// @Success 201 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Target user not found"
// @Security BearerAuth
// @Router /transactions/taxes [post]
func (h *transactionHandler) createTaxTransactions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateTaxBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txns, err := h.transactionService.CreateTaxTransactions(c.Request.Context(), userID, req.Taxes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToListTransactionResponse(txns))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction record as an administrative correction. Admin only.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
