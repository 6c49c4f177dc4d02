package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/doughlab/authd/pkg/httpx"
)

// validate is shared across handlers; the validator caches struct metadata so
// one instance is the intended usage.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs)
			return false
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return false
	}

	return true
}

func writeValidationError(w http.ResponseWriter, verrs validator.ValidationErrors) {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}

	httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
		"error":             "validation_failed",
		"error_description": "one or more fields failed validation",
		"fields":            fields,
	})
}
