// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/grove/internal/logger"
)

// AppName is the title of every notification.
const AppName = "grove"

var notify = beeep.Notify

// SetNotifier replaces the notification function (for tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon - beeep handles platform defaults
	err := notify(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// PROpened announces a newly created pull request.
func PROpened(branch, url string) error {
	return Send(AppName, "Pull request for "+branch+" is open: "+url)
}
