// Package endpoint exposes the marketplace services over HTTP using the
// util.APIResponse envelope.
package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/service"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal server error")

// Handler holds the services behind the HTTP routes.
type Handler struct {
	specialists   *service.SpecialistService
	orders        *service.OrderService
	registrations *service.RegistrationService
	profiles      *service.ProfileService
	messages      *service.MessageService
	catalog       *service.CatalogService
	logger        *zap.Logger
}

func NewHandler(store service.Store, producer events.Publisher, logger *zap.Logger) *Handler {
	return &Handler{
		specialists:   service.NewSpecialistService(store, producer, logger),
		orders:        service.NewOrderService(store, producer, logger),
		registrations: service.NewRegistrationService(store, producer, logger),
		profiles:      service.NewProfileService(store, logger),
		messages:      service.NewMessageService(store, logger),
		catalog:       service.NewCatalogService(store),
		logger:        logger.Named("endpoint"),
	}
}

// respondError maps error kinds onto status codes. Anything that is not a
// domain error is reported as a generic 500 and logged with its cause.
func (h *Handler) respondError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: msg, Err: err})
	case errors.Is(err, e.ErrValidation), errors.Is(err, e.ErrConstraint):
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
	default:
		h.logger.Error(msg,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		util.CallServerError(c, util.APIErrorParams{Msg: msg, Err: errInternal})
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: fmt.Errorf("%w: %v", e.ErrValidation, err),
		})
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid ID",
			Err: fmt.Errorf("%w: %s must be a positive integer", e.ErrValidation, name),
		})
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid query parameter",
			Err: fmt.Errorf("%w: %s must be a positive integer", e.ErrValidation, key),
		})
		return 0, false
	}
	return uint(v), true
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
