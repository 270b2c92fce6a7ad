package authsdk

import (
	"time"

	"github.com/aussiebroadwan/devconnect/pkg/httpx"
)

// ErrorMessage is one entry of an {"errors": [...]} body.
type ErrorMessage = httpx.ErrorMessage

// ErrorsResponse is the error envelope returned by the JSON endpoints.
type ErrorsResponse = httpx.ErrorsBody

// Account is the public view of an account. It never carries the password
// hash.
type Account struct {
	ID     string    `json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// TokenResponse is returned by login and registration.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginRequest is the POST /api/auth body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /api/users body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
