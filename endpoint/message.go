package endpoint

import (
	"strconv"

	"github.com/ariebrainware/cosec-marketplace/service"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

// SubmitMessage godoc
// @Summary      Send a contact message
// @Tags         Message
// @Accept       json
// @Produce      json
// @Param        request body service.MessageInput true "Message"
// @Success      201 {object} util.APIResponse{data=model.ContactMessage} "Message sent"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /messages [post]
func (h *Handler) SubmitMessage(c *gin.Context) {
	var in service.MessageInput
	if !bindJSON(c, &in) {
		return
	}
	msg, err := h.messages.SubmitMessage(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, "Failed to send message", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Message sent", Data: msg})
}

// ListMessages godoc
// @Summary      Admin inbox
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        unread query bool false "Only unread messages"
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Messages retrieved"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /admin/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	unread, _ := strconv.ParseBool(c.Query("unread"))
	limit, offset := parsePagination(c)

	msgs, total, err := h.messages.ListMessages(c.Request.Context(), unread, limit, offset)
	if err != nil {
		h.respondError(c, "Failed to retrieve messages", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Messages retrieved",
		Data: map[string]interface{}{"total": total, "messages": msgs},
	})
}

// MarkMessageRead godoc
// @Summary      Mark a contact message as read
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} util.APIResponse "Message marked as read"
// @Failure      404 {object} util.APIResponse "Message not found"
// @Router       /admin/messages/{id}/read [patch]
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.messages.MarkMessageRead(c.Request.Context(), id); err != nil {
		h.respondError(c, "Failed to update message", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Message marked as read", Data: nil})
}

// DeleteMessage godoc
// @Summary      Delete a contact message
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} util.APIResponse "Message deleted"
// @Failure      404 {object} util.APIResponse "Message not found"
// @Router       /admin/messages/{id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.messages.DeleteMessage(c.Request.Context(), id); err != nil {
		h.respondError(c, "Failed to delete message", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Message deleted", Data: nil})
}
