package wallet

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunagu-ab/tunagatya-app/internal/auth"
	"github.com/tunagu-ab/tunagatya-app/internal/logger"
	"github.com/tunagu-ab/tunagatya-app/internal/metrics"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetBalance godoc
// @Summary      Get point balance
// @Description  Returns the authenticated user's point balance. A wallet that
// @Description  has never been charged reads as zero.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Balance
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/wallet [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	b, err := h.repo.GetBalance(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("Failed to load balance for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// Charge godoc
// @Summary      Charge points
// @Description  Adds points to the authenticated user's wallet atomically.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChargeRequest  true  "Charge amount"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/charge [post]
func (h *Handler) Charge(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be positive"})
		return
	}

	newBalance, err := h.repo.Charge(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be positive"})
			return
		}
		logger.Errorf("Charge failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "ポイントのチャージ中にエラーが発生しました"})
		return
	}

	metrics.RecordCharge()

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%dポイントをチャージしました！", req.Amount),
		"new_balance": newBalance,
	})
}

// ListTransactions godoc
// @Summary      List point transactions
// @Description  Returns the authenticated user's point ledger, newest first.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {array}   Transaction
// @Failure      401     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /api/wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Errorf("Failed to load transactions for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	if txs == nil {
		txs = []Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}
