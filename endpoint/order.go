package endpoint

import (
	"github.com/ariebrainware/cosec-marketplace/middleware"
	"github.com/ariebrainware/cosec-marketplace/service"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" example:"PAID"`
}

// CreateOrder godoc
// @Summary      Place an order
// @Description  Registered users send user_id (or only a bearer token); guests send customer_name, customer_email and customer_phone.
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body service.OrderInput true "Order"
// @Success      201 {object} util.APIResponse{data=model.Order} "Order created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Specialist or user not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var in service.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()

	// A signed-in buyer may omit both identities; the token picks the account.
	if email, ok := middleware.GetEmail(c); ok && in.UserID == nil &&
		in.CustomerName == "" && in.CustomerEmail == "" && in.CustomerPhone == "" {
		if user, err := h.profiles.GetProfile(ctx, email); err == nil {
			in.UserID = &user.ID
		}
	}

	order, err := h.orders.CreateOrder(ctx, in)
	if err != nil {
		h.respondError(c, "Failed to create order", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Order created", Data: order})
}

// ListOrders godoc
// @Summary      List orders of a user or a specialist
// @Tags         Order
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "User ID"
// @Param        specialist_id query int false "Specialist ID"
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Orders retrieved"
// @Failure      400 {object} util.APIResponse "user_id or specialist_id is required"
// @Router       /orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := parseOptionalUint(c, "user_id")
	if !ok {
		return
	}
	specialistID, ok := parseOptionalUint(c, "specialist_id")
	if !ok {
		return
	}
	limit, offset := parsePagination(c)

	orders, total, err := h.orders.GetOrders(c.Request.Context(), service.OrderQuery{
		UserID:       userID,
		SpecialistID: specialistID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.respondError(c, "Failed to retrieve orders", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Orders retrieved",
		Data: map[string]interface{}{"total": total, "orders": orders},
	})
}

// UpdateOrderStatus godoc
// @Summary      Change an order's status
// @Description  Allowed values: PENDING, PAID, PROCESSING, COMPLETED, CANCELLED. COMPLETED and CANCELLED are final.
// @Tags         Order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Order ID"
// @Param        request body updateOrderStatusRequest true "New status"
// @Success      200 {object} util.APIResponse{data=model.Order} "Order updated"
// @Failure      400 {object} util.APIResponse "Invalid status or transition"
// @Failure      404 {object} util.APIResponse "Order not found"
// @Router       /orders/{id} [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, "Failed to update order status", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Order updated", Data: order})
}
