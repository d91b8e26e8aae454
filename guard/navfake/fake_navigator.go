package navfake

import (
	"net/url"
	"sync"

	"github.com/nfa-dashboard/go-dashboard-client/guard"
)

var _ guard.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records navigations for tests.
type FakeNavigator struct {
	lock    sync.Mutex
	current string
	history []string

	// NavigateErr, when set, is returned by Navigate without moving.
	NavigateErr error
}

func NewFakeNavigator(current string) *FakeNavigator {
	return &FakeNavigator{current: current}
}

func (n *FakeNavigator) CurrentPath() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.current
}

func (n *FakeNavigator) Navigate(path string, query url.Values) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.NavigateErr != nil {
		return n.NavigateErr
	}
	target := path
	if len(query) > 0 {
		target = path + "?" + query.Encode()
	}
	n.current = target
	n.history = append(n.history, target)
	return nil
}

// History returns every completed navigation in order.
func (n *FakeNavigator) History() []string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]string(nil), n.history...)
}
