package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type Handle struct {
	userService *UserService
}

func NewHandle(userService *UserService) Handle {
	return Handle{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Email string `json:"email"`
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler mounts the user routes
func Handler(h Handle) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	r.Get("/{userID}", h.GetUser)
	r.Put("/{userID}/email", h.UpdateEmail)
	return r
}

// Create a new user
// (POST /users)
func (h Handle) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	u, err := h.userService.CreateUser(r.Context(), request.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Invalid email address"})
			return
		}
		if errors.Is(err, ErrUserAlreadyExists) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, ErrorResponse{Error: "User already exists"})
			return
		}
		slog.Error("Failed creating user", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed creating user"})
		return
	}

	slog.Info("User created", "user_id", u.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, u)
}

// Get a user
// (GET /users/{userID})
func (h Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid user id"})
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	render.JSON(w, r, u)
}

// Change a user's email; the address must be verified again
// (PUT /users/{userID}/email)
func (h Handle) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid user id"})
		return
	}

	var request UpdateEmailRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.UpdateEmail(r.Context(), id, request.Email); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Invalid email address"})
			return
		}
		if errors.Is(err, ErrUserAlreadyExists) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, ErrorResponse{Error: "Email already in use"})
			return
		}
		h.renderLookupError(w, r, err)
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}
	render.JSON(w, r, u)
}

func (h Handle) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrUserNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "User not found"})
		return
	}
	slog.Error("Failed getting user", "error", err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{Error: "Failed getting user"})
}
