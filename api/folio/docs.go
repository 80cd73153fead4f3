// Package folio holds the OpenAPI document served at /swagger/. It follows
// the layout swag init produces; keep it in step with the handler godoc.
package folio

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/folio"
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
        "/api/download": {
            "get": {
                "description": "Verifies a signed download link and redirects to the file.\nError bodies are plain text.",
                "produces": ["text/plain"],
                "tags": ["Downloads"],
                "summary": "Redeem Download Link",
                "parameters": [
                    {"type": "string", "description": "Signed link token", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "307": {"description": "Redirect to the file location", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized | Invalid token", "schema": {"type": "string"}},
                    "404": {"description": "Download not found", "schema": {"type": "string"}}
                }
            }
        },
        "/api/download-links": {
            "post": {
                "description": "Signs a fresh, time-limited link for a catalog entry and returns it with the file's metadata.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Downloads"],
                "summary": "Request Download Link",
                "parameters": [
                    {"description": "Resource id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/foliosdk.DownloadLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "url, name, fileName, fileSize, version, checksum, expiresAt", "schema": {"$ref": "#/definitions/foliosdk.DownloadTicket"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "429": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}}
                }
            }
        },
        "/api/resources": {
            "get": {
                "description": "Lists the catalog. Download locations and tokens are never included.",
                "produces": ["application/json"],
                "tags": ["Downloads"],
                "summary": "List Resources",
                "responses": {
                    "200": {"description": "resources", "schema": {"$ref": "#/definitions/foliosdk.ResourceListResponse"}}
                }
            }
        },
        "/v1/admin/resources": {
            "get": {
                "security": [{"AdminAuth": []}],
                "description": "Lists every resource including its real download location.",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List Catalog (admin)",
                "parameters": [
                    {"type": "string", "description": "TOTP code when enabled", "name": "X-OTP", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "resources", "schema": {"$ref": "#/definitions/foliosdk.AdminResourceListResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/resources/{id}": {
            "put": {
                "security": [{"AdminAuth": []}],
                "description": "Stores a resource and its download record. An empty location stores the resource without a download.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Create or Replace Resource (admin)",
                "parameters": [
                    {"type": "string", "description": "Resource id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "TOTP code when enabled", "name": "X-OTP", "in": "header"},
                    {"description": "Resource", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/foliosdk.PutResourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "stored resource", "schema": {"$ref": "#/definitions/foliosdk.AdminResource"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminAuth": []}],
                "description": "Removes a resource and its download. Links already issued for it start answering 404.",
                "tags": ["Admin"],
                "summary": "Delete Resource (admin)",
                "parameters": [
                    {"type": "string", "description": "Resource id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "TOTP code when enabled", "name": "X-OTP", "in": "header"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/links/revoke": {
            "post": {
                "security": [{"AdminAuth": []}],
                "description": "Blocks a still-valid link until it expires.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Revoke Download Link (admin)",
                "parameters": [
                    {"type": "string", "description": "TOTP code when enabled", "name": "X-OTP", "in": "header"},
                    {"description": "Token and reason", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/foliosdk.RevokeLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "jti, resourceId, expiresAt, revokedAt", "schema": {"$ref": "#/definitions/foliosdk.RevokeLinkResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}},
                    "409": {"description": "error, error_description", "schema": {"$ref": "#/definitions/foliosdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nThis endpoint always returns 200 OK if the service is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/foliosdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe endpoint returning service health status and checks for critical dependencies\nIncludes uptime, version, and status of the database, link signer and catalog\nAn empty catalog is reported but does not fail the probe",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/foliosdk.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/foliosdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "foliosdk.AdminResource": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "description": {"type": "string"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "updatedAt": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "foliosdk.AdminResourceListResponse": {
            "type": "object",
            "properties": {
                "resources": {"type": "array", "items": {"$ref": "#/definitions/foliosdk.AdminResource"}}
            }
        },
        "foliosdk.DownloadLinkRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "foliosdk.DownloadTicket": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "expiresAt": {"type": "string"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "string"},
                "name": {"type": "string"},
                "url": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "foliosdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"description": "Error is a short machine readable code, e.g. \"not_found\"", "type": "string"},
                "error_description": {"description": "ErrorDescription is a human-readable description of the error", "type": "string"}
            }
        },
        "foliosdk.HealthChecks": {
            "type": "object",
            "properties": {
                "catalog": {"type": "string"},
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        },
        "foliosdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/foliosdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "foliosdk.PutResourceRequest": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "description": {"type": "string"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "foliosdk.ResourceListResponse": {
            "type": "object",
            "properties": {
                "resources": {"type": "array", "items": {"$ref": "#/definitions/foliosdk.ResourceSummary"}}
            }
        },
        "foliosdk.ResourceSummary": {
            "type": "object",
            "properties": {
                "checksum": {"type": "string"},
                "description": {"type": "string"},
                "downloadable": {"type": "boolean"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "foliosdk.RevokeLinkRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "foliosdk.RevokeLinkResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "jti": {"type": "string"},
                "resourceId": {"type": "string"},
                "revokedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "AdminAuth": {
            "description": "Operator token. Format: \"Bearer {ADMIN_TOKEN}\". Send X-OTP as well when TOTP is enabled.",
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
	Title:            "Folio Download Service API",
	Description:      "Signed, time-limited download links for the portfolio site.\n\nLinks are HS256 JWTs carried in the token query parameter of /api/download.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
