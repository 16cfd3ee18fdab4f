package notification

// NotificationData carries one message for a recipient.
type NotificationData struct {
	To      string         // Recipient identifier (e.g., email address)
	Subject string         // Optional: overrides the template subject
	Body    string         // Optional: raw content when no template body is registered
	Data    map[string]any // Template fields
}

// NoticeTemplate holds the subject and bodies registered for a notice type.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
