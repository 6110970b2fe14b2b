package endpoint

import (
	"strconv"

	"github.com/ariebrainware/cosec-marketplace/service"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

// ListSpecialists godoc
// @Summary      List or look up specialists
// @Description  Without lookup parameters returns a paginated list. With slug returns one listing, with email and/or name returns the owner's listing.
// @Tags         Specialist
// @Produce      json
// @Param        slug query string false "Listing slug"
// @Param        email query string false "Owner email"
// @Param        name query string false "Owner (secretary) name"
// @Param        is_draft query bool false "Filter by draft flag"
// @Param        keyword query string false "Search title, secretary name or company"
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Specialists retrieved"
// @Failure      404 {object} util.APIResponse "Specialist not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /specialists [get]
func (h *Handler) ListSpecialists(c *gin.Context) {
	ctx := c.Request.Context()

	if slug := c.Query("slug"); slug != "" {
		sp, err := h.specialists.GetSpecialistBySlug(ctx, slug)
		if err != nil {
			h.respondError(c, "Failed to retrieve specialist", err)
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialist retrieved", Data: sp})
		return
	}

	email, name := c.Query("email"), util.NormalizeName(c.Query("name"))
	if email != "" || name != "" {
		sp, err := h.specialists.GetSpecialistByOwner(ctx, email, name)
		if err != nil {
			h.respondError(c, "Failed to retrieve specialist", err)
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialist retrieved", Data: sp})
		return
	}

	limit, offset := parsePagination(c)
	q := service.SpecialistQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := c.Query("is_draft"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			q.IsDraft = &v
		}
	}

	list, total, err := h.specialists.ListSpecialists(ctx, q)
	if err != nil {
		h.respondError(c, "Failed to retrieve specialists", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Specialists retrieved",
		Data: map[string]interface{}{
			"total":       total,
			"specialists": list,
		},
	})
}

// GetSpecialist godoc
// @Summary      Get a specialist
// @Tags         Specialist
// @Produce      json
// @Param        id path int true "Specialist ID"
// @Success      200 {object} util.APIResponse{data=model.Specialist} "Specialist retrieved"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Specialist not found"
// @Router       /specialists/{id} [get]
func (h *Handler) GetSpecialist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sp, err := h.specialists.GetSpecialist(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "Failed to retrieve specialist", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialist retrieved", Data: sp})
}

// CreateSpecialist godoc
// @Summary      Create a specialist listing
// @Description  Creates a listing with its media and service offerings. Prices are computed server side.
// @Tags         Specialist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.SpecialistInput true "Listing"
// @Success      201 {object} util.APIResponse{data=model.Specialist} "Specialist created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /specialists [post]
func (h *Handler) CreateSpecialist(c *gin.Context) {
	var in service.SpecialistInput
	if !bindJSON(c, &in) {
		return
	}
	sp, err := h.specialists.CreateSpecialist(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, "Failed to create specialist", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Specialist created", Data: sp})
}

// UpdateSpecialist godoc
// @Summary      Replace a specialist listing
// @Description  Replaces every field. Media and service offerings not present in the request are removed.
// @Tags         Specialist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Specialist ID"
// @Param        request body service.SpecialistInput true "Listing"
// @Success      200 {object} util.APIResponse{data=model.Specialist} "Specialist updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Specialist not found"
// @Router       /specialists/{id} [put]
func (h *Handler) UpdateSpecialist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in service.SpecialistInput
	if !bindJSON(c, &in) {
		return
	}
	sp, err := h.specialists.UpdateSpecialist(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, "Failed to update specialist", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialist updated", Data: sp})
}

// DeleteSpecialist godoc
// @Summary      Delete a specialist listing
// @Tags         Specialist
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Specialist ID"
// @Success      200 {object} util.APIResponse "Specialist deleted"
// @Failure      404 {object} util.APIResponse "Specialist not found"
// @Router       /specialists/{id} [delete]
func (h *Handler) DeleteSpecialist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.specialists.DeleteSpecialist(c.Request.Context(), id); err != nil {
		h.respondError(c, "Failed to delete specialist", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialist deleted", Data: nil})
}
