// Package docs registers the OpenAPI document served under /swagger.
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
        "/all": {
            "get": {
                "produces": ["application/json"],
                "summary": "List every flight",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/flightList"}}
                }
            }
        },
        "/search": {
            "get": {
                "produces": ["application/json"],
                "summary": "Search flights by departure or arrival airport",
                "parameters": [
                    {"type": "string", "description": "departure airport", "name": "dep", "in": "query"},
                    {"type": "string", "description": "arrival airport", "name": "arr", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/flightList"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/searchdate": {
            "get": {
                "produces": ["application/json"],
                "summary": "Search flights departing within a future time range",
                "parameters": [
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "starttime", "in": "query", "required": true},
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "endtime", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/flightList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/addflight": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "summary": "Create a flight departing now or later",
                "parameters": [
                    {"type": "string", "description": "departure airport", "name": "departure_airport", "in": "formData", "required": true},
                    {"type": "string", "description": "arrival airport", "name": "arrival_airport", "in": "formData", "required": true},
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "departure_date", "in": "formData", "required": true},
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "arrival_date", "in": "formData", "required": true},
                    {"type": "integer", "description": "aircraft id", "name": "aircraft_id", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/responsePayload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responsePayload"}}
                }
            }
        },
        "/patch/{flight_id}": {
            "patch": {
                "produces": ["application/json"],
                "summary": "Assign an aircraft to a flight by serial",
                "parameters": [
                    {"type": "integer", "description": "flight id", "name": "flight_id", "in": "path", "required": true},
                    {"type": "string", "description": "aircraft serial", "name": "aircraft_serial", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responsePayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responsePayload"}}
                }
            }
        },
        "/report-closed/{flight_id}": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Delete a flight",
                "parameters": [
                    {"type": "integer", "description": "flight id", "name": "flight_id", "in": "path", "required": true},
                    {"type": "string", "description": "shared secret", "name": "apikey", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responsePayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/responsePayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responsePayload"}}
                }
            }
        },
        "/report": {
            "get": {
                "produces": ["application/json"],
                "summary": "Report departure airport, flight time and aircraft serial for a range",
                "parameters": [
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "reportstart", "in": "query", "required": true},
                    {"type": "string", "description": "MM/DD/YYYY,HH:MM", "name": "reportend", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reportList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "flightRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "aircraft_id": {"type": "integer", "x-nullable": true},
                "departure_airport": {"type": "string"},
                "arrival_airport": {"type": "string"},
                "departure_date": {"type": "string", "example": "08/07/2030,08:00"},
                "arrival_date": {"type": "string", "example": "08/08/2030,02:00"}
            }
        },
        "flightList": {
            "type": "object",
            "properties": {
                "flight": {"type": "array", "items": {"$ref": "#/definitions/flightRecord"}}
            }
        },
        "reportRecord": {
            "type": "object",
            "properties": {
                "departure_airport": {"type": "string"},
                "flight_time": {"type": "integer"},
                "Aircraft_serial": {"type": "string", "x-nullable": true}
            }
        },
        "reportList": {
            "type": "object",
            "properties": {
                "flight": {"type": "array", "items": {"$ref": "#/definitions/reportRecord"}}
            }
        },
        "errorPayload": {
            "type": "object",
            "properties": {
                "error": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "responsePayload": {
            "type": "object",
            "properties": {
                "response": {"type": "object"}
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
	Title:            "Flightdesk API",
	Description:      "Flight and aircraft records with time-range reporting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
