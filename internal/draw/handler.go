package draw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunagu-ab/tunagatya-app/internal/auth"
	"github.com/tunagu-ab/tunagatya-app/internal/logger"
	"github.com/tunagu-ab/tunagatya-app/internal/metrics"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Draw godoc
// @Summary      Draw a gacha
// @Description  Draws one prize from the gacha, debiting its price from the
// @Description  authenticated user's wallet. Stock, pool, wallet and the
// @Description  minted item all settle in one transaction.
// @Tags         draw
// @Security     BearerAuth
// @Produce      json
// @Param        gachaID  path      string  true  "Gacha ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/gacha/{gachaID}/draw [post]
func (h *Handler) Draw(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	email := c.GetString("user_email")

	gachaID := c.Param("gachaID")

	res, err := h.service.Draw(c.Request.Context(), userID, email, gachaID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGachaNotFound):
			metrics.RecordDraw("not_found")
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		case errors.Is(err, ErrGachaInactive), errors.Is(err, ErrOutOfStock),
			errors.Is(err, ErrInsufficientPoints), errors.Is(err, ErrEmptyPool):
			metrics.RecordDraw("rejected")
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			metrics.RecordDraw("error")
			logger.Errorf("Draw failed for user %d gacha %s: %v", userID, gachaID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while drawing the gacha"})
		}
		return
	}

	metrics.RecordDraw("success")

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully drew a gacha!",
		"item":    res.Item,
	})
}
