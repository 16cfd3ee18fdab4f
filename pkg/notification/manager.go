package notification

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// NotificationSystem represents a delivery channel (e.g., email).
type NotificationSystem string

// NoticeType represents a kind of message (e.g., "email_verification_code").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	ExampleNotice               NoticeType = "example"
	EmailVerificationCodeNotice NoticeType = "email_verification_code"
)

// NotificationManager manages notifiers and notification templates.
type NotificationManager struct {
	notifiers            map[NotificationSystem]Notifier                            // Map of notification systems to their Notifier implementations
	notificationRegistry map[NoticeType]map[NotificationSystem]NoticeTemplate // Registry for notification templates
}

// NewNotificationManager creates and returns a new NotificationManager.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		notifiers:            make(map[NotificationSystem]Notifier),
		notificationRegistry: make(map[NoticeType]map[NotificationSystem]NoticeTemplate),
	}
}

// RegisterNotifier registers a notifier for a specific system.
func (nm *NotificationManager) RegisterNotifier(system NotificationSystem, notifier Notifier) {
	nm.notifiers[system] = notifier
}

// RegisterNotification adds or replaces the template for a notice type on a system.
func (nm *NotificationManager) RegisterNotification(noticeType NoticeType, system NotificationSystem, template NoticeTemplate) error {
	if noticeType == "" || system == "" {
		return fmt.Errorf("invalid input: notice type and system cannot be empty")
	}
	if template.Subject == "" {
		return fmt.Errorf("invalid template: subject cannot be empty")
	}
	if template.Text == "" && template.Html == "" {
		return fmt.Errorf("invalid template: text or html body required")
	}

	if _, exists := nm.notificationRegistry[noticeType]; !exists {
		nm.notificationRegistry[noticeType] = make(map[NotificationSystem]NoticeTemplate)
	}

	nm.notificationRegistry[noticeType][system] = template
	return nil
}

// Send delivers the notification on every system registered for the notice type.
func (nm *NotificationManager) Send(noticeType NoticeType, notification NotificationData) error {
	systemTemplates, exists := nm.notificationRegistry[noticeType]
	if !exists {
		return fmt.Errorf("no templates registered for notice type: %s", noticeType)
	}

	var errs []error
	for system, template := range systemTemplates {
		notifier, exists := nm.notifiers[system]
		if !exists {
			errs = append(errs, fmt.Errorf("no notifier registered for system: %s", system))
			continue
		}

		if err := notifier.Send(noticeType, notification, template); err != nil {
			slog.Error("Failed to send notification", "notice_type", noticeType, "system", system, "err", err)
			errs = append(errs, fmt.Errorf("failed to send %s via %s: %w", noticeType, system, err))
		}
	}

	return errors.Join(errs...)
}

// Close releases notifiers that hold connections.
func (nm *NotificationManager) Close() error {
	var errs []error
	for system, notifier := range nm.notifiers {
		closer, ok := notifier.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s notifier: %w", system, err))
		}
	}
	return errors.Join(errs...)
}
