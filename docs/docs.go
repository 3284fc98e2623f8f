// Package docs registers the Swagger specification for the dashboard API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a dashboard session",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "End the dashboard session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/citizen/shipments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["citizen"],
                "summary": "List shipments",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/citizen/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["citizen"],
                "summary": "Submit feedback",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/distributor/overview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["distributor"],
                "summary": "Distributor overview",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/distributor/scan": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["distributor"],
                "summary": "Record a checkpoint scan",
                "responses": {
                    "200": {"description": "OK"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/api/official/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["official"],
                "summary": "Oversight summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/admin/users/{id}/active": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["admin"],
                "summary": "Activate or deactivate a user",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/admin/shipments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all shipments",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/shipments/assign": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["admin"],
                "summary": "Assign a shipment",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/admin/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Backend audit log",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/reports/shipments": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["admin"],
                "summary": "Shipments report export",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Read settings",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["admin"],
                "summary": "Update settings",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/admin/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Dashboard activity",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AidTrack Dashboard API",
	Description:      "Session-backed dashboard gateway for the aid shipment tracking backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
