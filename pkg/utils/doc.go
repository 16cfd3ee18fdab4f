// Package utils holds small helpers shared by the verification packages.
//
// MaskEmail is used wherever an address ends up in a log line:
//
//	slog.Info("Verification code sent", "email", utils.MaskEmail(u.Email))
//
// StringPtr builds the optional submitted code passed to ProcessSubmission:
//
//	out, err := controller.ProcessSubmission(ctx, session, u, utils.StringPtr("123456"))
package utils
