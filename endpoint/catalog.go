package endpoint

import (
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

// ListServiceOfferings godoc
// @Summary      List the service offering catalog
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.ServiceOfferingMasterList} "Catalog retrieved"
// @Router       /service-offerings [get]
func (h *Handler) ListServiceOfferings(c *gin.Context) {
	list, err := h.catalog.ListOfferingCatalog(c.Request.Context())
	if err != nil {
		h.respondError(c, "Failed to retrieve service offerings", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Service offerings retrieved", Data: list})
}

// ListPlatformFees godoc
// @Summary      List platform fee tiers
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.PlatformFee} "Fee tiers retrieved"
// @Router       /platform-fees [get]
func (h *Handler) ListPlatformFees(c *gin.Context) {
	tiers, err := h.catalog.ListPlatformFeeTiers(c.Request.Context())
	if err != nil {
		h.respondError(c, "Failed to retrieve platform fees", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Platform fees retrieved", Data: tiers})
}
