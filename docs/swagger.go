// Package docs registers the API description with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token"
        }
    },
    "tags": [
        {
            "name": "Auth",
            "description": "Signup, login, Firebase sign-in and token lifecycle"
        },
        {
            "name": "Boards",
            "description": "Board management operations"
        },
        {
            "name": "Columns",
            "description": "Column management operations"
        },
        {
            "name": "Cards",
            "description": "Card management and repositioning operations"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kanny Kanban API",
	Description:      "API for personal Kanban boards: authentication, boards, ordered columns and cards",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
