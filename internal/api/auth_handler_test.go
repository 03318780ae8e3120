package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/omnistudy/internal/api/shared"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/mocks"
	"github.com/phrazzld/omnistudy/internal/platform/firebase"
	"github.com/phrazzld/omnistudy/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(shared.SetTraceID(req.Context()))

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		signUpErr  error
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid registration",
			payload:    map[string]interface{}{"name": "Ada", "email": "ada@example.com", "password": "secret1"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			payload:    map[string]interface{}{"email": "invalid-email", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid email: invalid email format",
		},
		{
			name:       "password too short",
			payload:    map[string]interface{}{"email": "ada@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid password: too short or too small",
		},
		{
			name:       "missing email",
			payload:    map[string]interface{}{"password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid email: required field",
		},
		{
			name:       "unknown field",
			payload:    map[string]interface{}{"email": "ada@example.com", "password": "secret1", "role": "admin"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "email already registered",
			payload:    map[string]interface{}{"email": "ada@example.com", "password": "secret1"},
			signUpErr:  firebase.ErrEmailExists,
			wantStatus: http.StatusConflict,
			wantError:  "Email already exists",
		},
		{
			name:       "identity service not configured",
			payload:    map[string]interface{}{"email": "ada@example.com", "password": "secret1"},
			signUpErr:  firebase.ErrNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Authentication is not configured",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			identity := &mocks.MockIdentityProvider{
				SignUpFn: func(_ context.Context, name, email, _ string) (*domain.User, error) {
					if tc.signUpErr != nil {
						return nil, tc.signUpErr
					}
					return domain.NewUser("uid-1", email, name)
				},
			}
			jwtService := &mocks.MockJWTService{Token: "test-token", ExpiresAt: expiresAt}
			handler := NewAuthHandler(identity, jwtService)

			rr := postJSON(t, handler.Register, tc.payload)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantError != "" {
				resp := decodeError(t, rr)
				assert.Equal(t, tc.wantError, resp.Error)
				assert.NotEmpty(t, resp.TraceID)
				return
			}

			var resp AuthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "test-token", resp.Token)
			assert.Equal(t, "2026-01-02T03:04:05Z", resp.ExpiresAt)
			require.NotNil(t, resp.User)
			assert.Equal(t, "uid-1", resp.User.ID)
			assert.Equal(t, "Ada", resp.User.Name)
			assert.Equal(t, []string{"ada@example.com"}, identity.SignUpCalls())
		})
	}
}

func TestRegister_InvalidInputNeverReachesIdentityService(t *testing.T) {
	identity := &mocks.MockIdentityProvider{}
	handler := NewAuthHandler(identity, &mocks.MockJWTService{})

	rr := postJSON(t, handler.Register, map[string]interface{}{"email": "bad", "password": "x"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, identity.SignUpCalls())
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		signInErr  error
		tokenErr   error
		wantStatus int
		wantError  string
	}{
		{name: "valid login", wantStatus: http.StatusOK},
		{name: "wrong password", signInErr: firebase.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantError: "Invalid email or password"},
		{name: "unknown email", signInErr: firebase.ErrEmailNotFound, wantStatus: http.StatusUnauthorized, wantError: "Invalid email or password"},
		{name: "throttled", signInErr: firebase.ErrTooManyAttempts, wantStatus: http.StatusTooManyRequests, wantError: "Too many attempts, try again later"},
		{name: "upstream failure", signInErr: errors.New("dial tcp: timeout"), wantStatus: http.StatusInternalServerError, wantError: "Failed to sign in"},
		{name: "token failure", tokenErr: errors.New("signing failed"), wantStatus: http.StatusInternalServerError, wantError: "Failed to generate authentication token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			identity := &mocks.MockIdentityProvider{
				User: &domain.User{ID: "uid-7", Email: "grace@example.com", Name: "grace"},
				Err:  tc.signInErr,
			}
			jwtService := &mocks.MockJWTService{
				GenerateTokenFn: func(_ context.Context, user auth.Subject) (string, time.Time, error) {
					assert.Equal(t, "uid-7", user.UserID)
					return "login-token", time.Now().Add(time.Hour), tc.tokenErr
				},
			}
			handler := NewAuthHandler(identity, jwtService)

			rr := postJSON(t, handler.Login, map[string]interface{}{
				"email":    "grace@example.com",
				"password": "secret1",
			})

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decodeError(t, rr).Error)
				return
			}

			var resp AuthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "login-token", resp.Token)
			assert.Equal(t, "grace@example.com", resp.User.Email)
		})
	}
}

func TestMe(t *testing.T) {
	handler := NewAuthHandler(&mocks.MockIdentityProvider{}, &mocks.MockJWTService{})

	t.Run("with claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(shared.WithClaims(req.Context(), &auth.Claims{
			UserID: "uid-3",
			Email:  "lin@example.com",
			Name:   "Lin",
		}))
		rr := httptest.NewRecorder()

		handler.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var user domain.User
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
		assert.Equal(t, domain.User{ID: "uid-3", Email: "lin@example.com", Name: "Lin"}, user)
	})

	t.Run("without claims", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.Me(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
