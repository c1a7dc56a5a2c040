// Package docs registra el documento swagger de la API (mismo formato que genera swag init).
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
        "/api/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Títulos seleccionables",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "/api/movies/selected": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Tarjeta de la película seleccionada (overview completo)",
                "parameters": [
                    {"type": "string", "description": "título exacto del catálogo", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MovieCard"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/recommendations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recommend"],
                "summary": "Recomendaciones para una película",
                "parameters": [
                    {"type": "string", "description": "título exacto del catálogo", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieCard"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/similar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recommend"],
                "summary": "Vecinos con score (sin TMDB)",
                "parameters": [
                    {"type": "string", "description": "título exacto del catálogo", "name": "title", "in": "query", "required": true},
                    {"type": "integer", "description": "cantidad de vecinos (default 5, máx 50)", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Neighbor"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws/recommendations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recommend"],
                "summary": "Recomendaciones en tiempo real (WebSocket)",
                "parameters": [
                    {"type": "string", "description": "título exacto del catálogo", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Healthcheck",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "models.MovieCard": {
            "type": "object",
            "properties": {
                "movieId": {"type": "integer"},
                "title": {"type": "string"},
                "posterUrl": {"type": "string"},
                "releaseYear": {"type": "string"},
                "rating": {"type": "number"},
                "stars": {"type": "integer"},
                "overview": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "models.Neighbor": {
            "type": "object",
            "properties": {
                "movieId": {"type": "integer"},
                "title": {"type": "string"},
                "rowIndex": {"type": "integer"},
                "sim": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Movie Recommender API",
	Description:      "Recomendaciones item-item sobre una matriz de similitud precalculada, con detalles de TMDB.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
