package endpoint

import (
	"errors"
	"strings"

	"github.com/ariebrainware/cosec-marketplace/middleware"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/service"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

var errOtherAccount = errors.New("cannot act on another account")

// subjectEmail resolves whose data a request targets. Admins may name any
// account; everyone else is bound to the email in their token.
func subjectEmail(c *gin.Context, requested string) (string, bool) {
	own, _ := middleware.GetEmail(c)
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" || strings.EqualFold(requested, own) {
		return own, true
	}
	if role, _ := middleware.GetRole(c); role == model.RoleAdmin {
		return requested, true
	}
	util.CallForbidden(c, util.APIErrorParams{Msg: "Forbidden", Err: errOtherAccount})
	return "", false
}

// RegisterCompany godoc
// @Summary      Register a company
// @Description  Each account may register one company, ever. The account is created on first use.
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.RegistrationInput true "Registration"
// @Success      201 {object} util.APIResponse{data=model.CompanyRegistration} "Company registered"
// @Failure      400 {object} util.APIResponse "Invalid request or limit reached"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /user/companies [post]
func (h *Handler) RegisterCompany(c *gin.Context) {
	var in service.RegistrationInput
	if !bindJSON(c, &in) {
		return
	}
	email, ok := subjectEmail(c, in.Email)
	if !ok {
		return
	}
	in.Email = email

	reg, err := h.registrations.RegisterCompany(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, "Failed to register company", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Company registered", Data: reg})
}

// ListCompanies godoc
// @Summary      List company registrations of an account
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        email query string false "Account email, defaults to the caller"
// @Success      200 {object} util.APIResponse{data=[]model.CompanyRegistration} "Registrations retrieved"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /user/companies [get]
func (h *Handler) ListCompanies(c *gin.Context) {
	email, ok := subjectEmail(c, c.Query("email"))
	if !ok {
		return
	}
	regs, err := h.registrations.ListRegistrations(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, "Failed to retrieve registrations", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Registrations retrieved", Data: regs})
}

// GetProfile godoc
// @Summary      Get the caller's profile
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=model.User} "Profile retrieved"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Router       /user/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	email, _ := middleware.GetEmail(c)
	user, err := h.profiles.GetProfile(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, "Failed to retrieve profile", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: user})
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Only the fields present in the body are changed.
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.ProfileInput true "Profile fields"
// @Success      200 {object} util.APIResponse{data=model.User} "Profile updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Router       /user/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in service.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	email, _ := middleware.GetEmail(c)
	user, err := h.profiles.UpdateProfile(c.Request.Context(), email, in)
	if err != nil {
		h.respondError(c, "Failed to update profile", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile updated", Data: user})
}
