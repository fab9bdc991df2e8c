package item

import (
	"errors"
	"net/http"

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

// ListInventory godoc
// @Summary      List owned items
// @Description  Returns the authenticated user's items, newest first.
// @Tags         items
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   InventoryItem
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/user-items [get]
func (h *Handler) ListInventory(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("Failed to load inventory for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}

	if items == nil {
		items = []InventoryItem{}
	}
	c.JSON(http.StatusOK, items)
}

// Convert godoc
// @Summary      Convert an item to points
// @Description  Converts one of the authenticated user's items into points at
// @Description  its conversion rate. Converted items cannot be converted again.
// @Tags         items
// @Security     BearerAuth
// @Produce      json
// @Param        itemID  path      string  true  "User item ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  api.ErrorResponse
// @Failure      401     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /api/user-items/{itemID}/convert [post]
func (h *Handler) Convert(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userItemID := c.Param("itemID")

	points, err := h.repo.ConvertToPoints(c.Request.Context(), userID, userItemID)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		case errors.Is(err, ErrNotOwned), errors.Is(err, ErrNotConvertible):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			logger.Errorf("Conversion failed for user %d item %s: %v", userID, userItemID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "アイテムの変換中にエラーが発生しました"})
		}
		return
	}

	metrics.RecordConversion()

	c.JSON(http.StatusOK, gin.H{
		"message":          "アイテムをポイントに変換しました！",
		"converted_points": points,
	})
}
