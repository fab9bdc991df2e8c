package gacha

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tunagu-ab/tunagatya-app/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListGachas godoc
// @Summary      List active gachas
// @Description  Returns gachas on sale, newest first.
// @Tags         gachas
// @Produce      json
// @Success      200  {array}   Gacha
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/gachas [get]
func (h *Handler) ListGachas(c *gin.Context) {
	gachas, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list gachas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gachas"})
		return
	}

	if gachas == nil {
		gachas = []Gacha{}
	}
	c.JSON(http.StatusOK, gachas)
}

// GetGacha godoc
// @Summary      Get gacha detail
// @Description  Returns one gacha with its prize pool.
// @Tags         gachas
// @Produce      json
// @Param        gachaID  path      string  true  "Gacha ID"
// @Success      200      {object}  GachaDetail
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/gachas/{gachaID} [get]
func (h *Handler) GetGacha(c *gin.Context) {
	id := c.Param("gachaID")

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGachaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gacha not found"})
			return
		}
		logger.Errorf("Failed to fetch gacha %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gacha"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateGacha godoc
// @Summary      Create gacha listing
// @Description  Creates a new listing with full stock. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGachaRequest  true  "Listing data"
// @Success      201      {object}  Gacha
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/gachas [post]
func (h *Handler) CreateGacha(c *gin.Context) {
	var req CreateGachaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gacha, err := h.service.CreateGacha(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Failed to create gacha: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gacha"})
		return
	}

	c.JSON(http.StatusCreated, gacha)
}

// CreateItem godoc
// @Summary      Create catalog prize
// @Description  Registers a prize that pool entries can reference. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateItemRequest  true  "Prize data"
// @Success      201      {object}  Item
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Failed to create item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// AddPoolEntry godoc
// @Summary      Add prize pool entry
// @Description  Adds a prize with weight and quantity to a gacha's pool. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gachaID  path      string               true  "Gacha ID"
// @Param        request  body      AddPoolEntryRequest  true  "Pool entry"
// @Success      201      {object}  PoolEntry
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/gachas/{gachaID}/items [post]
func (h *Handler) AddPoolEntry(c *gin.Context) {
	gachaID := c.Param("gachaID")

	var req AddPoolEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.AddPoolEntry(c.Request.Context(), gachaID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGachaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gacha not found"})
		case errors.Is(err, ErrInvalidPoolEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": "pool quantity exceeds total stock"})
		default:
			logger.Errorf("Failed to add pool entry: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add pool entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetDrawAnalytics godoc
// @Summary      Draw analytics
// @Description  Returns aggregated draw analytics. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        group_by  query     string  false  "Group by dimension (day or gacha)"
// @Param        from      query     string  true   "Start datetime (RFC3339)"
// @Param        to        query     string  true   "End datetime (RFC3339)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  api.ErrorResponse
// @Failure      500       {object}  api.ErrorResponse
// @Router       /admin/analytics/draws [get]
func (h *Handler) GetDrawAnalytics(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from format, use RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to format, use RFC3339"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.service.GetDrawStatsByDay(c.Request.Context(), from, to)
		if err != nil {
			logger.Errorf("Failed to fetch draw stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "day", "from": from, "to": to, "data": stats})
	case "gacha":
		stats, err := h.service.GetDrawStatsByGacha(c.Request.Context(), from, to)
		if err != nil {
			logger.Errorf("Failed to fetch draw stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "gacha", "from": from, "to": to, "data": stats})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'day' or 'gacha'"})
	}
}
