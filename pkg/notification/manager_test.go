package notification

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	require.NotNil(t, nm)
	assert.NotNil(t, nm.notifiers)
	assert.NotNil(t, nm.notificationRegistry)
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	assert.Same(t, mockNotifier, nm.notifiers[EmailSystem])

	// Overwrite existing notifier
	newMockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, newMockNotifier)
	assert.Same(t, newMockNotifier, nm.notifiers[EmailSystem])
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager()

	tests := []struct {
		name        string
		noticeType  NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:       "Valid registration with both Text and Html",
			noticeType: ExampleNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Example Email", Text: "This is an example email", Html: "<p>This is an example email</p>"},
		},
		{
			name:       "Valid registration with Text only",
			noticeType: ExampleNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
		},
		{
			name:       "Valid registration with Html only",
			noticeType: ExampleNotice,
			system:     EmailSystem,
			template:   NoticeTemplate{Subject: "Example Email", Html: "<p>This is an example email</p>"},
		},
		{
			name:        "Empty notice type",
			noticeType:  "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty system",
			noticeType:  ExampleNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty subject",
			noticeType:  ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "No content",
			noticeType:  ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.noticeType, tt.system, tt.template)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.template, nm.notificationRegistry[tt.noticeType][tt.system])
		})
	}
}

func TestSend(t *testing.T) {
	mockEmailNotifier := &MockNotifier{}
	nm, err := NewNotificationManagerWithOptions(
		WithNotifier(EmailSystem, mockEmailNotifier),
		WithDefaultTemplates(),
	)
	require.NoError(t, err)

	testData := NotificationData{
		To:   "user@example.com",
		Data: map[string]any{"code": "123456"},
	}

	err = nm.Send(EmailVerificationCodeNotice, testData)
	require.NoError(t, err)

	require.Equal(t, 1, mockEmailNotifier.Count())
	assert.Equal(t, testData, mockEmailNotifier.SentNotifications[0])
	assert.Equal(t, "Verify Your Email Address", mockEmailNotifier.Templates[0].Subject)
	assert.Contains(t, mockEmailNotifier.Templates[0].Html, "{{.code}}")
}

func TestSendErrors(t *testing.T) {
	t.Run("UnregisteredNoticeType", func(t *testing.T) {
		nm := NewNotificationManager()
		assert.Error(t, nm.Send("unregistered", NotificationData{}))
	})

	t.Run("MissingNotifier", func(t *testing.T) {
		nm := NewNotificationManager()
		require.NoError(t, nm.RegisterNotification(ExampleNotice, EmailSystem, NoticeTemplate{Subject: "Example", Text: "body"}))
		assert.Error(t, nm.Send(ExampleNotice, NotificationData{To: "user@example.com"}))
	})

	t.Run("NotifierFailure", func(t *testing.T) {
		sendErr := errors.New("smtp unavailable")
		nm := NewNotificationManager()
		nm.RegisterNotifier(EmailSystem, &MockNotifier{Err: sendErr})
		require.NoError(t, nm.RegisterNotification(ExampleNotice, EmailSystem, NoticeTemplate{Subject: "Example", Text: "body"}))

		err := nm.Send(ExampleNotice, NotificationData{To: "user@example.com"})
		assert.ErrorIs(t, err, sendErr)
	})
}

type closingNotifier struct {
	MockNotifier
	closed bool
}

func (c *closingNotifier) Close() error {
	c.closed = true
	return nil
}

func TestClose(t *testing.T) {
	closer := &closingNotifier{}
	nm := NewNotificationManager()
	nm.RegisterNotifier(EmailSystem, closer)
	nm.RegisterNotifier("noop", &MockNotifier{})

	require.NoError(t, nm.Close())
	assert.True(t, closer.closed)
}

func TestRenderBodies(t *testing.T) {
	template := NoticeTemplate{
		Subject: "Verify Your Email Address",
		Text:    loadTemplate("templates/email/email_verification_code.txt"),
		Html:    loadTemplate("templates/email/email_verification_code.html"),
	}
	require.NotEmpty(t, template.Text)
	require.NotEmpty(t, template.Html)

	t.Run("WithLink", func(t *testing.T) {
		text, html, err := renderBodies(template, NotificationData{
			To: "user@example.com",
			Data: map[string]any{
				"code":                  "AB12CD34",
				"link":                  "https://idm.example.com/login-actions/action-token?key=abc&client_id=web",
				"linkExpiration":        300,
				"linkExpirationMinutes": 5,
				"realmName":             "Example",
				"user":                  struct{ Email string }{Email: "user@example.com"},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, text, "AB12CD34")
		assert.Contains(t, text, "within 5 minutes")
		assert.Contains(t, text, "key=abc&client_id=web")
		assert.Contains(t, html, "AB12CD34")
		assert.Contains(t, html, "Hello user@example.com")
		assert.Contains(t, html, "key=abc&amp;client_id=web")
	})

	t.Run("WithoutLink", func(t *testing.T) {
		text, _, err := renderBodies(template, NotificationData{
			Data: map[string]any{"code": "AB12CD34", "realmName": "Example"},
		})
		require.NoError(t, err)
		assert.NotContains(t, text, "Or open this link")
	})

	t.Run("RawBody", func(t *testing.T) {
		text, html, err := renderBodies(NoticeTemplate{Subject: "s"}, NotificationData{Body: "plain"})
		require.NoError(t, err)
		assert.Equal(t, "plain", text)
		assert.Empty(t, html)
	})

	t.Run("NoBody", func(t *testing.T) {
		_, _, err := renderBodies(NoticeTemplate{Subject: "s"}, NotificationData{})
		assert.Error(t, err)
	})
}

func TestEmailNotifier_RequiresRecipient(t *testing.T) {
	notifier, err := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	err = notifier.Send(ExampleNotice, NotificationData{}, NoticeTemplate{Subject: "s", Text: "t"})
	assert.Error(t, err)
}

func TestEmailNotifier_MasksRecipientInLogs(t *testing.T) {
	notifier, err := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	notifier.logSent(EmailVerificationCodeNotice, "alice@example.com")

	assert.Contains(t, buf.String(), "to=a****@example.com")
	assert.NotContains(t, buf.String(), "alice@example.com")
}
