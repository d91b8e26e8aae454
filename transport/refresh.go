package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

// refreshCall is one refresh cycle. All concurrent 401s share the same call
// and read its result after done is closed.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// refresher deduplicates concurrent refresh attempts into exactly one
// in-flight call. The inflight slot is checked and set under the lock, and
// torn down unconditionally when the call settles.
type refresher struct {
	bare   *Client
	source CredentialSource
	log    zerolog.Logger

	lock     sync.Mutex
	inflight *refreshCall
}

func newRefresher(bare *Client, source CredentialSource, log zerolog.Logger) *refresher {
	return &refresher{bare: bare, source: source, log: log}
}

// refresh returns a valid new access token, either by joining the
// outstanding call or by starting one.
func (r *refresher) refresh(ctx context.Context) (string, error) {
	r.lock.Lock()
	if call := r.inflight; call != nil {
		r.lock.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	r.inflight = call
	r.lock.Unlock()

	// The call is shared by every waiter, so it must not die with the
	// caller that happened to start it.
	call.token, call.err = r.doRefresh(context.WithoutCancel(ctx))

	r.lock.Lock()
	r.inflight = nil
	r.lock.Unlock()
	close(call.done)

	return call.token, call.err
}

// doRefresh exchanges the persisted refresh token for a new grant on the
// bare client and applies it atomically.
func (r *refresher) doRefresh(ctx context.Context) (string, error) {
	refreshToken := r.source.RefreshToken()
	if refreshToken == "" {
		return "", clierrors.ErrRefreshUnavailable
	}

	r.log.Info().Msg("refreshing access token")

	var grant credentials.Grant
	body := map[string]string{"refresh_token": refreshToken}
	if err := r.bare.Post(ctx, RefreshEndpoint, body, &grant); err != nil {
		// A network failure is not a rejection; leave credentials alone.
		if clierrors.Is(err, clierrors.ErrTransport) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", clierrors.ErrRefreshRejected, err)
	}

	if err := r.source.Apply(grant); err != nil {
		return "", clierrors.Wrapf(err, "apply refreshed credentials")
	}

	return grant.AccessToken, nil
}
