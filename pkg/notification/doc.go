// Package notification delivers templated notices through registered channels.
//
// A NotificationManager maps each NoticeType to one template per
// NotificationSystem and each system to a Notifier. Email is delivered over
// SMTP with github.com/wneessen/go-mail; templates are rendered with
// text/template and html/template against NotificationData.Data.
//
// # Basic Setup
//
//	manager, err := notification.NewNotificationManagerWithOptions(
//		notification.WithSMTP(notification.SMTPConfig{
//			Host: "localhost",
//			Port: 1025,
//			From: "noreply@example.com",
//		}),
//		notification.WithDefaultTemplates(),
//	)
//	if err != nil {
//		return err
//	}
//	defer manager.Close()
//
//	err = manager.Send(notification.EmailVerificationCodeNotice, notification.NotificationData{
//		To: "user@example.com",
//		Data: map[string]any{
//			"code":      "4F7KQ2ZD",
//			"link":      "https://idm.example.com/login-actions/action-token?key=...",
//			"realmName": "Example",
//		},
//	})
//
// # Templates
//
// The email verification code template receives the fields code, user,
// link, linkExpiration (seconds), linkExpirationMinutes and realmName.
// When link is empty the fallback link paragraph is omitted.
//
// # Testing
//
// MockNotifier records every notification it receives and can be set to
// fail with a fixed error:
//
//	mock := &notification.MockNotifier{}
//	manager := notification.NewNotificationManager()
//	manager.RegisterNotifier(notification.EmailSystem, mock)
package notification
