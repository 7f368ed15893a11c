package requester

import (
	"fmt"
	"net/http"

	"github.com/brizzai/apidoc-filter/internal/config"
)

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// HTTPAuthManager implements the AuthManager interface
type HTTPAuthManager struct {
	authType   config.AuthType
	authConfig map[string]string
}

// NewHTTPAuthManager creates a new HTTPAuthManager for the upstream document source
func NewHTTPAuthManager(upstream *config.UpstreamConfig) *HTTPAuthManager {
	authType := upstream.AuthType
	if authType == "" {
		authType = config.AuthTypeNone
	}
	return &HTTPAuthManager{
		authType:   authType,
		authConfig: upstream.AuthConfig,
	}
}

// ApplyAuth adds authentication to the request
func (a *HTTPAuthManager) ApplyAuth(req *http.Request) error {
	switch a.authType {
	case config.AuthTypeNone:
		return nil
	case config.AuthTypeBasic:
		req.SetBasicAuth(a.authConfig["username"], a.authConfig["password"])
	case config.AuthTypeBearer, config.AuthTypeOAuth2:
		req.Header.Set("Authorization", "Bearer "+a.authConfig["token"])
	case config.AuthTypeAPIKey:
		header := a.authConfig["header"]
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, a.authConfig["key"])
	default:
		return fmt.Errorf("unsupported auth type: %s", a.authType)
	}
	return nil
}
