package transport

import (
	"encoding/json"

	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

// envelope is the backend's standard success wrapper. Resource endpoints
// respond {code, message, data}; the auth endpoints respond flat. Presence of
// the "code" field is what distinguishes the two.
type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorBody is the shape of failure payloads; some handlers use "message",
// some add "error" with detail.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// decodeBody unmarshals a success payload into out, lifting "data" out of
// the envelope when one is present. A nil out discards the body.
func decodeBody(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Code != nil {
		if len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return clierrors.Wrapf(err, "decode response data")
		}
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return clierrors.Wrapf(err, "decode response")
	}
	return nil
}

// errorMessage extracts the human-readable message from a failure payload.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
