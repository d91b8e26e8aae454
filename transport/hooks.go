package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestHook mutates an outbound request before transmission. Hooks never
// fail and never block; they run in registration order.
type RequestHook func(*http.Request) *http.Request

// applyHooks runs the hook chain over the request.
func applyHooks(req *http.Request, hooks []RequestHook) *http.Request {
	for _, hook := range hooks {
		req = hook(req)
	}
	return req
}

// bearerHook attaches the current access token as a bearer credential. A
// missing token leaves the request untouched; the backend rejects the call
// and the response interceptor takes it from there.
func bearerHook(source CredentialSource) RequestHook {
	return func(req *http.Request) *http.Request {
		if token := source.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}
}

// requestIDHook tags every request with a unique ID for log correlation.
func requestIDHook() RequestHook {
	return func(req *http.Request) *http.Request {
		req.Header.Set("X-Request-ID", uuid.NewString())
		return req
	}
}
