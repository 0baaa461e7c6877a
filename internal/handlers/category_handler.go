package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/taxonomy"
)

// CategoryHandler serves the category taxonomy.
type CategoryHandler struct {
	taxonomy *taxonomy.Taxonomy
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(tax *taxonomy.Taxonomy) *CategoryHandler {
	return &CategoryHandler{taxonomy: tax}
}

// GetCategories lists the known categories
// @Summary     List categories
// @Description Known categories per transaction type, in display order. Pass type to get a single list.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "income, expense, savings or investment"
// @Success     200 {object} map[string][]taxonomy.Category
// @Failure     400 {object} ErrorResponse "Unknown type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if !txType.Valid() {
			respondWithError(c, apperrors.InvalidField("type", "type must be one of income, expense, savings, investment"))
			return
		}
		c.JSON(http.StatusOK, gin.H{string(txType): h.taxonomy.Categories(txType)})
		return
	}

	c.JSON(http.StatusOK, h.taxonomy.All())
}
