package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/omnistudy/internal/api/shared"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/phrazzld/omnistudy/internal/service/auth"
)

// IdentityProvider verifies and creates accounts. firebase.Client implements it.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignUp(ctx context.Context, name, email, password string) (*domain.User, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	identity   IdentityProvider
	jwtService auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(identity IdentityProvider, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		jwtService: jwtService,
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := domain.ValidateCredentials(req.Email, req.Password); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid credentials: "+err.Error(), err)
		return
	}

	user, err := h.identity.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to sign in")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// Me returns the identity carried by the caller's token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := shared.GetClaims(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	})
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	log := logger.FromContext(r.Context())

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token",
			errors.Join(errors.New("token generation failed"), err))
		return
	}

	log.Info("user authenticated", slog.String("user_id", user.ID), slog.Int("status", status))

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      user,
	})
}
