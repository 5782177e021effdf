package client

import (
	"sync"

	"github.com/weevils-io/weevils-go/internal/auth"
	"github.com/weevils-io/weevils-go/internal/http"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// subClients memoizes the children built by a client or handle.
type subClients struct {
	mutex    sync.Mutex
	children map[string]weevils.Session
	order    []string
	attached []weevils.Session
}

func newSubClients() *subClients {
	return &subClients{children: make(map[string]weevils.Session)}
}

// memo returns the child stored under key, building it on first use.
func memo[T weevils.Session](cache *subClients, key string, build func() T) T {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if child, ok := cache.children[key]; ok {
		typed, ok := child.(T)
		if ok {
			return typed
		}
	}

	child := build()
	if _, exists := cache.children[key]; !exists {
		cache.order = append(cache.order, key)
	}

	cache.children[key] = child

	return child
}

// attach records a child that is not memoized, so Login and Logout still
// reach it.
func (c *subClients) attach(child weevils.Session) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.attached = append(c.attached, child)
}

func (c *subClients) snapshot() []weevils.Session {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	children := make([]weevils.Session, 0, len(c.order)+len(c.attached))
	for _, key := range c.order {
		children = append(children, c.children[key])
	}

	return append(children, c.attached...)
}

// session is embedded by every client and handle. It holds the shared
// transport, this node's own credentials and the children built from it.
type session struct {
	transport   *http.Client
	credentials *auth.Credentials
	children    *subClients
}

func newSession(transport *http.Client, credentials *auth.Credentials) *session {
	return &session{
		transport:   transport,
		credentials: credentials,
		children:    newSubClients(),
	}
}

// child returns a session for a sub-client: same transport, cloned credentials.
func (s *session) child() *session {
	return newSession(s.transport, s.credentials.Clone())
}

// handle returns a child session for an instance handle built on demand.
// It is attached rather than memoized so each call gets a fresh handle.
func (s *session) handle() *session {
	child := s.child()
	s.children.attach(child)

	return child
}

// Login implements weevils.Session.Login.
func (s *session) Login(token string) {
	s.credentials.Login(token)

	for _, child := range s.children.snapshot() {
		child.Login(token)
	}
}

// Logout implements weevils.Session.Logout.
func (s *session) Logout() {
	s.credentials.Logout()

	for _, child := range s.children.snapshot() {
		child.Logout()
	}
}

// LoggedIn implements weevils.Session.LoggedIn.
func (s *session) LoggedIn() bool {
	return s.credentials.LoggedIn()
}
