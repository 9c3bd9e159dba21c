package service

import (
	"errors"

	"github.com/rs/zerolog"

	"credit-app/internal/core/dispatch"
)

// Handlers bundles the services whose methods serve bus messages.
type Handlers struct {
	CreditRequests *CreditRequestService
	Exports        *ExportService
	Audit          *AuditServiceImpl
	Auth           *AuthServiceImpl
}

// NewBus builds the application bus: logging outermost, then auditing.
func NewBus(audit dispatch.AuditRecorder, log zerolog.Logger, strictAudit bool) *dispatch.Bus {
	return dispatch.New(
		dispatch.Logging(log),
		dispatch.Audit(audit, log, strictAudit),
	)
}

// RegisterHandlers binds every command and query to its handler.
func RegisterHandlers(bus *dispatch.Bus, h Handlers) error {
	return errors.Join(
		dispatch.Register(bus, h.CreditRequests.Create),
		dispatch.Register(bus, h.CreditRequests.UpdateStatus),
		dispatch.Register(bus, h.CreditRequests.Delete),
		dispatch.Register(bus, h.CreditRequests.Get),
		dispatch.Register(bus, h.CreditRequests.ListMine),
		dispatch.Register(bus, h.CreditRequests.ListPaged),
		dispatch.Register(bus, h.Exports.Export),
		dispatch.Register(bus, h.Audit.ListViews),
		dispatch.Register(bus, h.Auth.Register),
		dispatch.Register(bus, h.Auth.RegisterAnalyst),
		dispatch.Register(bus, h.Auth.Login),
		dispatch.Register(bus, h.Auth.Me),
	)
}
