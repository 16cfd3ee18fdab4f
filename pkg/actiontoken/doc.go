// Package actiontoken issues the signed fallback links sent alongside
// verification codes. A link carries the user, the authentication session
// compound id, the email being verified and an absolute expiry.
//
//	issuer, err := actiontoken.NewIssuer(secret, "verify-email-code", "https://login.example.com")
//	link, err := issuer.Issue(ctx, actiontoken.LinkRequest{...})
//	claims, err := issuer.Parse(r.URL.Query().Get("key"))
package actiontoken
