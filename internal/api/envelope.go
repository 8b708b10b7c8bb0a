package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped on breaking changes to the response envelope.
const EnvelopeVersion = 1

// APIEnvelope wraps every successful response (and plain error responses).
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps structured error responses.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps response bodies in
// the versioned envelope.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	var apiErr *APIError
	if err, ok := v.(error); ok {
		if errors.As(err, &apiErr) {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return APIEnvelope{Version: EnvelopeVersion, Error: err.Error()}, nil
	}

	return APIEnvelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
}
