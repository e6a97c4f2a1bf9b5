package handler

import (
	"net/http"

	"andespos/internal/apierror"
	"andespos/internal/dto"
	"andespos/internal/middleware"
	"andespos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// tenant extracts the company and user ids from the JWT claims. Returns false
// after writing the error response when either id is malformed.
func tenant(c *gin.Context) (companyID, userID uuid.UUID, ok bool) {
	claims := middleware.GetClaims(c)
	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid tenant in token"))
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid user in token"))
		return uuid.Nil, uuid.Nil, false
	}
	return companyID, userID, true
}

// Open godoc
// @Summary Open a new cash session with an opening float
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenSessionRequest true "Opening data"
// @Success 201 {object} model.CashSession
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/open [post]
func (h *CashHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	companyID, userID, ok := tenant(c)
	if !ok {
		return
	}
	session, err := h.svc.OpenSession(c.Request.Context(), companyID, userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Status godoc
// @Summary Reconciliation view of the current drawer
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CashStatusResponse
// @Router /v1/cash/status [get]
func (h *CashHandler) Status(c *gin.Context) {
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetStatus(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movement godoc
// @Summary Record a manual cash in/out movement on the open session
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovementRequest true "Movement"
// @Success 201 {object} model.CashMovement
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/movement [post]
func (h *CashHandler) Movement(c *gin.Context) {
	var req dto.MovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	companyID, userID, ok := tenant(c)
	if !ok {
		return
	}
	mv, err := h.svc.RecordMovement(c.Request.Context(), companyID, userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mv)
}

// Close godoc
// @Summary Close the open session, freezing the reconciliation snapshot
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CloseSessionRequest true "Counted cash and notes"
// @Success 200 {object} model.CashSession
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/close [post]
func (h *CashHandler) Close(c *gin.Context) {
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	session, err := h.svc.CloseSession(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// History godoc
// @Summary Most recent closed sessions, newest first
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CashSession
// @Router /v1/cash/history [get]
func (h *CashHandler) History(c *gin.Context) {
	companyID, _, ok := tenant(c)
	if !ok {
		return
	}
	sessions, err := h.svc.ListHistory(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
