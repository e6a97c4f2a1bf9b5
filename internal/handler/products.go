package handler

import (
	"errors"
	"net/http"

	"andespos/internal/apierror"
	"andespos/internal/dto"
	"andespos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductsHandler serves read-only catalog lookups for the register screen.
// There is no service layer here: the queries are plain scoped reads with no
// business rules on top.
type ProductsHandler struct{ repo repository.ProductRepository }

func NewProductsHandler(repo repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// List godoc
// @Summary Search the product catalog
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring"
// @Param code query string false "Exact product code"
// @Param categoryId query string false "Category filter"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size, max 200"
// @Success 200 {object} map[string]interface{}
// @Router /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	products, total, err := h.repo.List(c.Request.Context(), companyID, filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Get godoc
// @Summary Fetch one product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} apierror.APIError
// @Router /v1/products/{id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	product, err := h.repo.FindByID(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRow) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}
