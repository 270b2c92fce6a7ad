package authsdk

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/devconnect/pkg/httpx"
)

// SDKClient is a client for the devconnect auth API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// TokenHeader is the request header the session token is sent in.
	TokenHeader string

	mu    sync.RWMutex
	token string
}

// NewSDKClient creates a client with no token attached.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		TokenHeader: httpx.DefaultTokenHeader,
	}
}

// SetToken attaches token to every subsequent request.
func (c *SDKClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken detaches the session token.
func (c *SDKClient) ClearToken() {
	c.SetToken("")
}

// Token returns the attached token, or "".
func (c *SDKClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
