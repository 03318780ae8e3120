package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/omnistudy/internal/api/shared"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/generation"
)

// decodeAndValidate reads a JSON body into v and validates it. On failure it
// writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// HandleAPIError writes the status and safe message for err. Provider
// failures and malformed input are logged at WARN so they stand out from
// routine client errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if message == "An unexpected error occurred" && fallbackMsg != "" {
		message = fallbackMsg
	}

	var opts []shared.ResponseOption
	var failure *generation.Failure
	if errors.As(err, &failure) || errors.Is(err, domain.ErrValidation) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// decodeOptionalImage decodes an optional base64 image. An empty payload
// yields nil.
func decodeOptionalImage(encoded string) (*generation.Image, error) {
	if encoded == "" {
		return nil, nil
	}
	img, err := generation.DecodeImage(encoded)
	if err != nil {
		return nil, domain.NewValidationError("image", "must be base64 encoded")
	}
	return img, nil
}
