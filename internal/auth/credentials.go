// Package auth holds the credentials a client authenticates with.
package auth

import (
	"errors"
	"sync"

	"github.com/weevils-io/weevils-go/internal/constants"
)

// ErrNoCredentials is returned when neither an API token nor a user token is set.
var ErrNoCredentials = errors.New("no credentials configured")

// Credentials pairs the account-level API token with an optional user-session
// token. The user token takes precedence while it is set.
type Credentials struct {
	mutex     sync.RWMutex
	apiToken  string
	userToken string
}

// NewCredentials creates credentials for the given API token.
func NewCredentials(apiToken string) *Credentials {
	return &Credentials{apiToken: apiToken}
}

// Login sets the user-session token.
func (c *Credentials) Login(userToken string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.userToken = userToken
}

// Logout clears the user-session token.
func (c *Credentials) Logout() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.userToken = ""
}

// LoggedIn reports whether a user-session token is set.
func (c *Credentials) LoggedIn() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.userToken != ""
}

// Authorization returns the value of the Authorization header.
func (c *Credentials) Authorization() (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.userToken != "" {
		return constants.AuthSchemeBearer + " " + c.userToken, nil
	}

	if c.apiToken != "" {
		return constants.AuthSchemeToken + " " + c.apiToken, nil
	}

	return "", ErrNoCredentials
}

// Clone returns an independent copy, used when a child client is built.
func (c *Credentials) Clone() *Credentials {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return &Credentials{apiToken: c.apiToken, userToken: c.userToken}
}

// As returns a copy that acts as the user owning userToken.
func (c *Credentials) As(userToken string) *Credentials {
	clone := c.Clone()
	clone.userToken = userToken

	return clone
}
