// Package errors provides the structured errors returned by the HTTP API.
//
// Handlers translate package sentinel errors into an *Error with a stable
// code, then write Response with the status from HTTPStatusCode:
//
//	apiErr := errors.Wrap(err, errors.ErrCodeSessionExpired, "Authentication session expired")
//	render.Status(r, apiErr.HTTPStatusCode())
//	render.JSON(w, r, apiErr.Response())
//
// Use the standard library errors package for errors.Is and errors.As; an
// *Error unwraps to the error it wraps.
package errors
