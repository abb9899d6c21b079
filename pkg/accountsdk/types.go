package accountsdk

import "github.com/aussiebroadwan/accounts/pkg/jwtx"

// Outcome messages carried in Result.Message when Success is false.
const (
	MessageLoginExist    = "login exist"
	MessageEmailExist    = "email exist"
	MessageInternalError = "internal error"
	MessageLinkNotExist  = "link not exist"
	MessageWrongLogin    = "wrong login"
	MessageWrongPassword = "wrong password"
	MessageNotVerified   = "not verified"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Login    string `json:"login" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password" example:"correct-horse"`
}

// Result is returned by register, verify and login. On a successful login
// Message holds the access token.
type Result struct {
	Action  string `json:"action" example:"login"`
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:""`
}

// NameResponse is returned by GET /name.
type NameResponse struct {
	Name string `json:"name" example:"alice"`
}

// ErrorResponse is the body of non-2xx JSON responses.
type ErrorResponse struct {
	Code    string            `json:"code" example:"validation_error"`
	Message string            `json:"message" example:"validation failed"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h2m3s"`
	Version string        `json:"version,omitempty" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists readiness of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the public key set used to verify access tokens.
type JWKSResponse jwtx.JWKS
