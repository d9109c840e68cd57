// Package docs registers the API document served at /v1/openapi.json
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
        "/surveys": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "List surveys and the active survey id",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Create a survey and make it active",
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/SurveyMetaPatch"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Survey"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/surveys/active": {
            "get": {
                "tags": ["surveys"],
                "summary": "Get the active survey",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Survey"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["surveys"],
                "summary": "Select the active survey",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"surveyId": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/surveys/{surveyId}": {
            "get": {
                "tags": ["surveys"],
                "summary": "Get a survey",
                "parameters": [{"$ref": "#/parameters/surveyId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Survey"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "patch": {
                "tags": ["surveys"],
                "summary": "Update survey metadata",
                "parameters": [
                    {"$ref": "#/parameters/surveyId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyMetaPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Survey"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["surveys"],
                "summary": "Delete a survey and its responses",
                "parameters": [{"$ref": "#/parameters/surveyId"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/surveys/{surveyId}/questions": {
            "post": {
                "tags": ["questions"],
                "summary": "Add a question, or a default one of the given type",
                "parameters": [
                    {"$ref": "#/parameters/surveyId"},
                    {"in": "body", "name": "body", "schema": {"type": "object", "properties": {"type": {"type": "string"}, "question": {"$ref": "#/definitions/Question"}}}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Question"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/surveys/{surveyId}/questions/reorder": {
            "post": {
                "tags": ["questions"],
                "summary": "Move the question at index from to index to",
                "parameters": [
                    {"$ref": "#/parameters/surveyId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"from": {"type": "integer"}, "to": {"type": "integer"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Survey"}}}
            }
        },
        "/surveys/{surveyId}/questions/{questionId}": {
            "patch": {
                "tags": ["questions"],
                "summary": "Update question fields",
                "parameters": [{"$ref": "#/parameters/surveyId"}, {"$ref": "#/parameters/questionId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Question"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["questions"],
                "summary": "Remove a question",
                "parameters": [{"$ref": "#/parameters/surveyId"}, {"$ref": "#/parameters/questionId"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/surveys/{surveyId}/questions/{questionId}/type": {
            "put": {
                "tags": ["questions"],
                "summary": "Change the question type",
                "parameters": [{"$ref": "#/parameters/surveyId"}, {"$ref": "#/parameters/questionId"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Question"}}}
            }
        },
        "/surveys/{surveyId}/questions/{questionId}/move": {
            "post": {
                "tags": ["questions"],
                "summary": "Move a question one slot up or down",
                "parameters": [{"$ref": "#/parameters/surveyId"}, {"$ref": "#/parameters/questionId"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Survey"}}}
            }
        },
        "/surveys/{surveyId}/responses": {
            "get": {
                "tags": ["responses"],
                "summary": "List responses in submission order",
                "parameters": [{"$ref": "#/parameters/surveyId"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["responses"],
                "summary": "Submit a response",
                "parameters": [
                    {"$ref": "#/parameters/surveyId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"answers": {"type": "object", "additionalProperties": {"type": "string"}}}}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Required questions are blank"}
                }
            }
        },
        "/surveys/{surveyId}/responses/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Download responses as a JSON file",
                "parameters": [{"$ref": "#/parameters/surveyId"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/surveys/{surveyId}/analytics": {
            "get": {
                "tags": ["analytics"],
                "summary": "Aggregated statistics for a survey",
                "parameters": [{"$ref": "#/parameters/surveyId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SurveyAnalytics"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/analytics/active": {
            "get": {
                "tags": ["analytics"],
                "summary": "Aggregated statistics for the active survey",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SurveyAnalytics"}}}
            }
        },
        "/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Active survey id, post-submission link and accent presets",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settings/highlight-article": {
            "put": {
                "tags": ["settings"],
                "summary": "Set the post-submission link",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"url": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/reset": {
            "post": {
                "tags": ["settings"],
                "summary": "Restore the demo dataset",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/state": {
            "get": {
                "tags": ["settings"],
                "summary": "Export the whole portal state",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["settings"],
                "summary": "Replace the whole portal state",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "parameters": {
        "surveyId": {"type": "string", "name": "surveyId", "in": "path", "required": true},
        "questionId": {"type": "string", "name": "questionId", "in": "path", "required": true}
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "RatingScale": {
            "type": "object",
            "properties": {
                "min": {"type": "integer"},
                "max": {"type": "integer"},
                "step": {"type": "integer"},
                "labels": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "prompt": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["multiple_choice", "rating", "text"]},
                "required": {"type": "boolean"},
                "options": {"type": "array", "items": {"type": "string"}},
                "scale": {"$ref": "#/definitions/RatingScale"}
            }
        },
        "Survey": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "audienceHint": {"type": "string"},
                "accentColor": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/Question"}}
            }
        },
        "SurveyMetaPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "audienceHint": {"type": "string"},
                "accentColor": {"type": "string"}
            }
        },
        "SurveyAnalytics": {
            "type": "object",
            "properties": {
                "surveyId": {"type": "string"},
                "totalResponses": {"type": "integer"},
                "completionRate": {"type": "number"},
                "averageCompletionTime": {"type": "number"},
                "lastResponseAt": {"type": "string", "format": "date-time"},
                "questionAnalytics": {"type": "array", "items": {"type": "object"}},
                "timeline": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Neuro Pulse Survey API",
	Description:      "Survey authoring, response collection and analytics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
