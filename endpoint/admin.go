package endpoint

import (
	"fmt"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

type verificationRequest struct {
	VerificationStatus model.VerificationStatus `json:"verification_status" example:"VERIFIED"`
}

type registrationStatusRequest struct {
	Status model.RegistrationStatus `json:"status" example:"APPROVED"`
}

func invalidStatusError(field string) error {
	return fmt.Errorf("%w: %s is required", e.ErrValidation, field)
}

// ListAllOrders godoc
// @Summary      List every order
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Orders retrieved"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /admin/orders [get]
func (h *Handler) ListAllOrders(c *gin.Context) {
	limit, offset := parsePagination(c)
	orders, total, err := h.orders.ListAllOrders(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, "Failed to retrieve orders", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Orders retrieved",
		Data: map[string]interface{}{"total": total, "orders": orders},
	})
}

// SetSpecialistVerification godoc
// @Summary      Record the review outcome of a listing
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Specialist ID"
// @Param        request body verificationRequest true "PENDING, VERIFIED or REJECTED"
// @Success      200 {object} util.APIResponse{data=model.Specialist} "Verification updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      404 {object} util.APIResponse "Specialist not found"
// @Router       /admin/specialists/{id}/verification [patch]
func (h *Handler) SetSpecialistVerification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req verificationRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.VerificationStatus == "" {
		h.respondError(c, "Failed to update verification", invalidStatusError("verification_status"))
		return
	}
	sp, err := h.specialists.SetVerificationStatus(c.Request.Context(), id, req.VerificationStatus)
	if err != nil {
		h.respondError(c, "Failed to update verification", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Verification updated", Data: sp})
}

// SetRegistrationStatus godoc
// @Summary      Approve or reject a company registration
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Registration ID"
// @Param        request body registrationStatusRequest true "PENDING, APPROVED or REJECTED"
// @Success      200 {object} util.APIResponse{data=model.CompanyRegistration} "Registration updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      404 {object} util.APIResponse "Registration not found"
// @Router       /admin/companies/{id} [patch]
func (h *Handler) SetRegistrationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req registrationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == "" {
		h.respondError(c, "Failed to update registration", invalidStatusError("status"))
		return
	}
	reg, err := h.registrations.SetRegistrationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, "Failed to update registration", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Registration updated", Data: reg})
}
