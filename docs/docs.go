// Package docs registers the OpenAPI document built from the handler
// annotations. Regenerate it after changing an annotation.
package docs

//go:generate swag init --dir ../ -g cmd/server/main.go -o . --outputTypes json

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds the document metadata served at /swagger
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gym Backend API",
	Description:      "Gym membership backend: clients, plans, contract lifecycle, tracking and finance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
