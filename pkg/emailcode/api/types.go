package api

import (
	"github.com/google/uuid"
	"github.com/tendant/verify-email-code/pkg/emailcode"
)

// CreateSessionRequest starts an authentication session for a user
type CreateSessionRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	ClientID string    `json:"client_id"`
}

// FormResponse is the code entry form, or the verdict when there is nothing to show
type FormResponse struct {
	Status   emailcode.Status   `json:"status"`
	State    emailcode.State    `json:"state"`
	Template string             `json:"template,omitempty"`
	Email    string             `json:"email,omitempty"`
	Info     string             `json:"info,omitempty"`
	Error    string             `json:"error,omitempty"`
	Delivery emailcode.Delivery `json:"delivery"`
}

func newFormResponse(out emailcode.Outcome) FormResponse {
	return FormResponse{
		Status:   out.Status,
		State:    out.State,
		Template: out.Form.Template,
		Email:    out.Form.Email,
		Info:     out.Form.Info,
		Error:    out.Form.Error,
		Delivery: out.Delivery,
	}
}

// ProviderResponse describes one registered required action
type ProviderResponse struct {
	ID          string `json:"id"`
	DisplayText string `json:"display_text"`
}
