// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AXO Networks",
            "email": "support@axo.example"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/_health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HealthResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register an account with a temporary password",
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with a permanent or temporary password",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/force-reset-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Replace the temporary password",
                "parameters": [
                    {"description": "New password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ForceResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/dashboard/data": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Role dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardResponse"}}
                }
            }
        },
        "/manufacturer/programs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Manufacturer"],
                "summary": "List own programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProgramListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Manufacturer"],
                "summary": "Create a program",
                "parameters": [
                    {"description": "Program", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CreateProgramRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ProgramResponse"}}
                }
            }
        },
        "/manufacturer/metrics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Manufacturer"],
                "summary": "Latest metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MetricsResponse"}}
                }
            }
        },
        "/supplier/available-demand": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Supplier"],
                "summary": "Demand listings visible to the supplier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AvailableDemandResponse"}}
                }
            }
        },
        "/supplier/demand/{id}/quote": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Supplier"],
                "summary": "Submit a quote",
                "parameters": [
                    {"type": "string", "description": "Demand listing ID", "name": "id", "in": "path", "required": true},
                    {"description": "Quote", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SubmitQuoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "database": {"type": "string"}
            }
        },
        "domain.RegisterRequest": {
            "type": "object",
            "required": ["company", "email", "name", "userType"],
            "properties": {
                "userType": {"type": "string"},
                "company": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "domain.RegisterResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "user": {"type": "object"},
                "temporaryPassword": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.ForceResetPasswordRequest": {
            "type": "object",
            "required": ["email", "newPassword"],
            "properties": {
                "email": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "domain.TokenResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"type": "object"},
                "forcePasswordReset": {"type": "boolean"}
            }
        },
        "domain.UserResponse": {
            "type": "object",
            "properties": {"user": {"type": "object"}}
        },
        "domain.DashboardResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"}
            }
        },
        "domain.CreateProgramRequest": {
            "type": "object",
            "required": ["programName"],
            "properties": {
                "programName": {"type": "string"},
                "supplierId": {"type": "string"},
                "status": {"type": "string"},
                "milestoneHealthStatus": {"type": "string"}
            }
        },
        "domain.ProgramResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "program": {"type": "object"}
            }
        },
        "domain.ProgramListResponse": {
            "type": "object",
            "properties": {"programs": {"type": "array", "items": {"type": "object"}}}
        },
        "domain.MetricsResponse": {
            "type": "object",
            "properties": {"metrics": {"type": "object"}}
        },
        "domain.AvailableDemandResponse": {
            "type": "object",
            "properties": {"demands": {"type": "array", "items": {"type": "object"}}}
        },
        "domain.SubmitQuoteRequest": {
            "type": "object",
            "required": ["quoteAmount"],
            "properties": {
                "quoteAmount": {"type": "number"},
                "proposedTimeline": {"type": "string"},
                "notes": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "AXO Marketplace API",
	Description:      "B2B manufacturing marketplace: programs, sourcing requests, demand listings and role dashboards",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
