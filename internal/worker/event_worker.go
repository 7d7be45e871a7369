package worker

import (
	"github.com/spec-kit/complaint-desk/internal/service"
)

// StartEventWorkers registers the in-process event subscribers.
func StartEventWorkers(audit *service.AuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
