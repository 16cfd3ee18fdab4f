package notification

import "sync"

// MockNotifier records sent notifications. When Err is set, Send records
// nothing and returns it.
type MockNotifier struct {
	SentNotifications []NotificationData
	Templates         []NoticeTemplate
	Err               error
	mu                sync.Mutex
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	m.Templates = append(m.Templates, template)
	return nil
}

// Count returns the number of notifications sent so far.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentNotifications)
}
