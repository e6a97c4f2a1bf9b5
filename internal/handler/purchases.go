package handler

import (
	"net/http"

	"andespos/internal/dto"
	"andespos/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchasesHandler struct{ svc service.PurchaseService }

func NewPurchasesHandler(svc service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{svc: svc}
}

// Create godoc
// @Summary Register a stock purchase from a provider
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePurchaseRequest true "Purchase lines"
// @Success 201 {object} model.Purchase
// @Failure 400 {object} apierror.APIError
// @Router /v1/purchases [post]
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	purchase, err := h.svc.CreatePurchase(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// List godoc
// @Summary List purchases, newest first
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Purchase
// @Router /v1/purchases [get]
func (h *PurchasesHandler) List(c *gin.Context) {
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	purchases, err := h.svc.ListPurchases(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}
