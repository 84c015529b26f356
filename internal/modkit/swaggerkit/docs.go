// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import swag "github.com/swaggo/swag/v2"

// docTemplate is the hand-maintained OpenAPI document for the public surface.
// Keep it in sync with the handlers in internal/services
const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/products/import": {
      "post": {
        "tags": ["products"],
        "summary": "Import a product from Amazon by ASIN",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/ImportRequest"}
            }
          }
        },
        "responses": {
          "200": {"description": "Product refreshed"},
          "201": {"description": "Product created"},
          "429": {"description": "Upstream throttled, honor Retry-After"},
          "503": {"description": "Circuit open, honor Retry-After"}
        }
      }
    },
    "/healthz": {
      "get": {
        "tags": ["meta"],
        "summary": "Liveness probe",
        "responses": {"200": {"description": "OK"}}
      }
    },
    "/readyz": {
      "get": {
        "tags": ["meta"],
        "summary": "Readiness probe",
        "responses": {
          "200": {"description": "All backends reachable"},
          "503": {"description": "A backend is unavailable"}
        }
      }
    },
    "/version": {
      "get": {
        "tags": ["meta"],
        "summary": "Build information",
        "responses": {"200": {"description": "OK"}}
      }
    }
  },
  "components": {
    "schemas": {
      "ImportRequest": {
        "type": "object",
        "required": ["asin", "marketplace"],
        "properties": {
          "asin": {"type": "string", "example": "B07G5J5K3Y"},
          "marketplace": {"type": "string", "example": "US"}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported swagger info so clients can modify it at boot
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "Boardstore API",
	Description:      "Product import service backed by the Amazon Product Advertising API",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
