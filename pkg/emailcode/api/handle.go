package api

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/verify-email-code/pkg/actiontoken"
	"github.com/tendant/verify-email-code/pkg/emailcode"
	apierrors "github.com/tendant/verify-email-code/pkg/errors"
	"github.com/tendant/verify-email-code/pkg/requiredaction"
	"github.com/tendant/verify-email-code/pkg/sessions"
	"github.com/tendant/verify-email-code/pkg/user"
)

const maxFormMemory = 1 << 20

// UserLookup loads the user an authentication session belongs to
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Handler serves the verify email with code flow over HTTP
type Handler struct {
	controller *emailcode.Controller
	registry   *requiredaction.Registry
	sessions   sessions.Repository
	users      UserLookup
	issuer     *actiontoken.Issuer
}

// NewHandler creates a new verify email code API handler
func NewHandler(controller *emailcode.Controller, registry *requiredaction.Registry, sessionRepo sessions.Repository, users UserLookup, issuer *actiontoken.Issuer) *Handler {
	return &Handler{
		controller: controller,
		registry:   registry,
		sessions:   sessionRepo,
		users:      users,
		issuer:     issuer,
	}
}

// RegisterRoutes adds the flow endpoints to an existing router
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/required-actions", h.ListProviders)
	r.Get("/sessions/{sessionID}/verify-email-code", h.Challenge)
	r.Post("/sessions/{sessionID}/verify-email-code", h.Submit)
	r.Get("/sessions/{sessionID}/required-actions/{providerID}", h.Challenge)
	r.Post("/sessions/{sessionID}/required-actions/{providerID}", h.Submit)
	r.Get("/login-actions/action-token", h.ActionToken)
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		h.writeError(w, r, apierrors.New(apierrors.ErrCodeInvalidInput, "Invalid request body"))
		return
	}

	if _, err := h.users.GetUser(r.Context(), req.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.sessions.Create(r.Context(), sessions.CreateSessionRequest{
		ClientID: req.ClientID,
		UserID:   req.UserID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, session)
}

// ListProviders handles GET /required-actions
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers := h.registry.Providers()
	resp := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		resp = append(resp, ProviderResponse{ID: p.ID, DisplayText: p.DisplayText})
	}
	render.JSON(w, r, resp)
}

// Challenge handles GET /sessions/{sessionID}/verify-email-code
func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	action, session, u, ok := h.resolve(w, r)
	if !ok {
		return
	}

	out, err := action.RequestChallenge(r.Context(), session, u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, newFormResponse(out))
}

// Submit handles POST /sessions/{sessionID}/verify-email-code
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	action, session, u, ok := h.resolve(w, r)
	if !ok {
		return
	}

	out, err := action.ProcessSubmission(r.Context(), session, u, submittedCode(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, newFormResponse(out))
}

// ActionToken handles GET /login-actions/action-token, the fallback link in the email
func (h *Handler) ActionToken(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	claims, err := h.issuer.Parse(query.Get("key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	sessionID, tabID, clientID, err := sessions.ParseCompoundID(claims.SessionCompoundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if tabID != query.Get("tab_id") || clientID != query.Get("client_id") || clientID != claims.ClientID {
		h.writeError(w, r, apierrors.New(apierrors.ErrCodeTokenInvalid, "Link does not belong to this login"))
		return
	}

	session, err := h.sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if session.UserID != claims.UserID() {
		h.writeError(w, r, apierrors.New(apierrors.ErrCodeTokenInvalid, "Link does not belong to this login"))
		return
	}

	u, err := h.users.GetUser(r.Context(), session.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.controller.ConfirmLink(r.Context(), session, u, claims.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, newFormResponse(out))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (requiredaction.Action, *sessions.Session, *user.User, bool) {
	providerID := chi.URLParam(r, "providerID")
	if providerID == "" {
		providerID = emailcode.ProviderID
	}
	provider, err := h.registry.Get(providerID)
	if err != nil {
		h.writeError(w, r, err)
		return nil, nil, nil, false
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, apierrors.New(apierrors.ErrCodeInvalidInput, "Invalid session id"))
		return nil, nil, nil, false
	}

	session, err := h.sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return nil, nil, nil, false
	}

	u, err := h.users.GetUser(r.Context(), session.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return nil, nil, nil, false
	}

	return provider.Action, session, u, true
}

// submittedCode returns nil unless the request carries a form body with a code field.
func submittedCode(r *http.Request) *string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	case "multipart/form-data":
		err = r.ParseMultipartForm(maxFormMemory)
	default:
		return nil
	}
	if err != nil {
		slog.Warn("Failed to decode form body", "error", err)
		return nil
	}

	values, ok := r.PostForm["code"]
	if !ok || len(values) == 0 {
		return nil
	}
	code := values[0]
	return &code
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code == apierrors.ErrCodeInternal {
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, apiErr.HTTPStatusCode())
	render.JSON(w, r, apiErr.Response())
}

func toAPIError(err error) *apierrors.Error {
	var apiErr *apierrors.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, sessions.ErrSessionNotFound):
		return apierrors.Wrap(err, apierrors.ErrCodeSessionExpired, "Authentication session expired")
	case errors.Is(err, sessions.ErrClientIDRequired):
		return apierrors.Wrap(err, apierrors.ErrCodeInvalidInput, "client_id is required")
	case errors.Is(err, user.ErrUserNotFound):
		return apierrors.Wrap(err, apierrors.ErrCodeUserNotFound, "User not found")
	case errors.Is(err, actiontoken.ErrTokenExpired):
		return apierrors.Wrap(err, apierrors.ErrCodeTokenExpired, "Link has expired")
	case errors.Is(err, actiontoken.ErrInvalidToken),
		errors.Is(err, actiontoken.ErrWrongTokenType),
		errors.Is(err, sessions.ErrInvalidCompoundID):
		return apierrors.Wrap(err, apierrors.ErrCodeTokenInvalid, "Invalid link")
	case errors.Is(err, emailcode.ErrLinkEmailMismatch):
		return apierrors.Wrap(err, apierrors.ErrCodeEmailMismatch, "Link was sent to a different email address")
	case errors.Is(err, requiredaction.ErrProviderNotFound):
		return apierrors.Wrap(err, apierrors.ErrCodeNotFound, "Required action not found")
	default:
		return apierrors.Wrap(err, apierrors.ErrCodeInternal, "An error occurred while processing the request")
	}
}
