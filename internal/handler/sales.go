package handler

import (
	"net/http"

	"andespos/internal/apierror"
	"andespos/internal/dto"
	"andespos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Create godoc
// @Summary Register a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateSaleRequest true "Sale lines and payment"
// @Success 201 {object} model.Sale
// @Failure 400 {object} apierror.APIError
// @Router /v1/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	companyID, userID, ok := tenant(c)
	if !ok {
		return
	}
	sale, err := h.svc.CreateSale(c.Request.Context(), companyID, userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// Refund godoc
// @Summary Refund a completed sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} model.Sale
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/sales/{id}/refund [post]
func (h *SalesHandler) Refund(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sale id"))
		return
	}
	companyID, userID, ok := tenant(c)
	if !ok {
		return
	}
	sale, err := h.svc.RefundSale(c.Request.Context(), companyID, saleID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// List godoc
// @Summary List sales in a date window
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param range query string false "today|week|month|custom"
// @Param startDate query string false "YYYY-MM-DD, custom range only"
// @Param endDate query string false "YYYY-MM-DD, custom range only"
// @Param status query string false "completed|refunded|all"
// @Success 200 {array} model.Sale
// @Router /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	sales, err := h.svc.ListSales(c.Request.Context(), companyID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
