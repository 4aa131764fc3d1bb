package worker

import (
	"github.com/campusdesk/helpdesk/internal/service"
)

// StartNotificationWorker registers the fan-out handlers on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
