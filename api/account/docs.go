// Package account holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/account/http/router.go -o api/account
package account

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/accounts"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {
            "post": {
                "description": "Creates an unverified account and mails a single-use verification link.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Register an account",
                "parameters": [
                    {
                        "description": "Registration payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/accountsdk.RegisterRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Outcome; success=false carries login exist, email exist or internal error", "schema": {"$ref": "#/definitions/accountsdk.Result"}},
                    "400": {"description": "Body is not valid JSON", "schema": {"$ref": "#/definitions/accountsdk.ErrorResponse"}},
                    "422": {"description": "Field validation failed", "schema": {"$ref": "#/definitions/accountsdk.ErrorResponse"}}
                }
            }
        },
        "/verify/{link}": {
            "get": {
                "description": "Consumes a verification link and marks the account verified.",
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Verify an email address",
                "parameters": [
                    {"type": "string", "description": "Link address from the verification mail", "name": "link", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Outcome; success=false carries link not exist", "schema": {"$ref": "#/definitions/accountsdk.Result"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Checks credentials. On success the message is a signed EdDSA access token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/accountsdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Outcome; success=false carries wrong login, wrong password or internal error", "schema": {"$ref": "#/definitions/accountsdk.Result"}},
                    "400": {"description": "Body is not valid JSON", "schema": {"$ref": "#/definitions/accountsdk.ErrorResponse"}},
                    "422": {"description": "Field validation failed", "schema": {"$ref": "#/definitions/accountsdk.ErrorResponse"}}
                }
            }
        },
        "/name": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the login the access token was issued to.",
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Current account name",
                "responses": {
                    "200": {"description": "Subject of the token", "schema": {"$ref": "#/definitions/accountsdk.NameResponse"}},
                    "401": {"description": "Missing or invalid access token"},
                    "403": {"description": "Token subject no longer resolves to an account"}
                }
            }
        },
        "/.well-known/jwks.json": {
            "get": {
                "description": "Returns the JSON Web Key Set used to verify access tokens.",
                "produces": ["application/json"],
                "tags": ["well-known"],
                "summary": "Get JWKS",
                "responses": {
                    "200": {"description": "The JSON Web Key Set", "schema": {"$ref": "#/definitions/accountsdk.JWKSResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe. Always 200 while the process runs.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/accountsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe covering the database and the token signer.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/accountsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/accountsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "accountsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "login": {"type": "string", "example": "alice"},
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "correct-horse"}
            }
        },
        "accountsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "login": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "correct-horse"}
            }
        },
        "accountsdk.Result": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "example": "login"},
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": ""}
            }
        },
        "accountsdk.NameResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "alice"}
            }
        },
        "accountsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "validation_error"},
                "message": {"type": "string", "example": "validation failed"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "accountsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        },
        "accountsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "uptime": {"type": "string", "example": "1h2m3s"},
                "version": {"type": "string", "example": "v0.1.0"},
                "checks": {"$ref": "#/definitions/accountsdk.HealthChecks"}
            }
        },
        "accountsdk.JWKSResponse": {
            "type": "object",
            "properties": {
                "keys": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/jwtx.JWK"}
                }
            }
        },
        "jwtx.JWK": {
            "type": "object",
            "properties": {
                "kty": {"type": "string"},
                "use": {"type": "string"},
                "alg": {"type": "string"},
                "kid": {"type": "string"},
                "crv": {"type": "string"},
                "x": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Accounts Service API",
	Description:      "Account registration, email verification and login issuing EdDSA-signed JWT access tokens.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
