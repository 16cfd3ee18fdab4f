// Package emailcode implements the "verify email with code" required action.
//
// When a user with an unverified email reaches the action, the Controller
// generates a short code, binds it and the email to the authentication
// session, and emails it together with a signed fallback link. A page
// reload shows the same form again without sending another email. The user
// types the code back and ProcessSubmission compares it against the bound
// value; a submission with no form body clears the state and sends a fresh
// code.
//
// # Collaborators
//
// The Controller only talks to narrow interfaces:
//
//   - SessionNotes: per-session notes, see pkg/sessions
//   - UserStore: persists the verified flag, see pkg/user
//   - LinkIssuer: signs fallback links, see pkg/actiontoken
//   - Notifier: delivers the email, see pkg/notification
//
// # Usage
//
//	controller, err := emailcode.NewController(emailcode.Config{
//		CodeFormat:   verifycode.MustParseFormat("digits-6"),
//		LinkLifespan: 5 * time.Minute,
//		RealmName:    "Example",
//	}, emailcode.Dependencies{
//		Notes:    sessionRepo,
//		Users:    userService,
//		Links:    issuer,
//		Notifier: notificationManager,
//	})
//	if err != nil {
//		return err
//	}
//	defer controller.Shutdown(context.Background())
//
//	outcome, err := controller.RequestChallenge(ctx, session, user)
//
// Delivery failures never fail the request; they show up as
// Outcome.Delivery == DeliveryFailed.
package emailcode
