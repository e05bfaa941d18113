// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token"
        }
    },
    "tags": [
        {"name": "Users", "description": "Registration, login and profile management"},
        {"name": "Places", "description": "Place catalogue, geo search and text search"},
        {"name": "Roadbooks", "description": "Roadbook and stop management"},
        {"name": "Sharing", "description": "Roadbook share grants"},
        {"name": "Favorites", "description": "Favorite places and roadbooks"},
        {"name": "Social", "description": "Follows, tips, votes and ratings"}
    ]
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Roadbook API",
	Description:      "API for travel roadbooks, place discovery and sharing",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
