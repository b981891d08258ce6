// Package docs registers the swagger spec served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/contracts": {
            "get": {
                "tags": ["contracts"],
                "summary": "List active contracts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/contracts/{contractID}": {
            "get": {
                "tags": ["contracts"],
                "summary": "Get contract by ID",
                "parameters": [{"type": "integer", "name": "contractID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/jobs/unpaid": {
            "get": {
                "tags": ["jobs"],
                "summary": "List unpaid jobs",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/jobs/{jobID}/pay": {
            "post": {
                "tags": ["jobs"],
                "summary": "Pay for a job",
                "parameters": [{"type": "integer", "name": "jobID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/balances/deposit": {
            "post": {
                "tags": ["balances"],
                "summary": "Deposit funds",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/balances/deposit-limit": {
            "get": {
                "tags": ["balances"],
                "summary": "Get deposit limit",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/best-profession": {
            "get": {
                "tags": ["reports"],
                "summary": "Best profession",
                "parameters": [
                    {"type": "string", "name": "start", "in": "query", "required": true},
                    {"type": "string", "name": "end", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/best-payers": {
            "get": {
                "tags": ["reports"],
                "summary": "Best payers",
                "parameters": [
                    {"type": "string", "name": "start", "in": "query", "required": true},
                    {"type": "string", "name": "end", "in": "query", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Work Ledger API",
	Description:      "Contract and job settlement ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
