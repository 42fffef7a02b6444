// Package docs holds the Swagger document for the chat API.
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
        "/api/v1/chat/messages": {
            "post": {
                "description": "Matches the message, returns the bot reply and persists the exchange. Starts a session when the cookie is missing or expired.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Send a chat message",
                "parameters": [
                    {
                        "description": "User message",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.sendReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sendResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/sessions": {
            "post": {
                "description": "Drops the current session and starts an empty one.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Start a new chat",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sessionResp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/sessions/current": {
            "get": {
                "description": "Returns the session named by the cookie, including its transcript.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sessionResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/conversations": {
            "get": {
                "description": "Returns saved conversation files, newest first.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "List saved conversations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.conversationListResp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/conversations/{name}": {
            "get": {
                "description": "Loads a saved conversation by file name.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get a saved conversation",
                "parameters": [
                    {"type": "string", "description": "Conversation file name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.conversationResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the chatbot is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "Chatbot is healthy", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/live": {
            "get": {
                "description": "Check if the process is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "Chatbot is alive", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the catalog is loaded and the session store is reachable",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "Chatbot is ready", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Chatbot is not ready", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "http.sendReq": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "http.sendResp": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "tag": {"type": "string"},
                "source": {"type": "string"},
                "exhausted": {"type": "boolean"},
                "reply": {"type": "string"},
                "conversation": {"type": "string"}
            }
        },
        "http.turnResp": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "text": {"type": "string"},
                "at": {"type": "string"}
            }
        },
        "http.sessionResp": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "started_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "messages_seen": {"type": "integer"},
                "books_shown": {"type": "integer"},
                "page_index": {"type": "object", "additionalProperties": {"type": "integer"}},
                "transcript": {"type": "array", "items": {"$ref": "#/definitions/http.turnResp"}}
            }
        },
        "http.conversationInfoResp": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "mod_time": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "http.conversationListResp": {
            "type": "object",
            "properties": {
                "conversations": {"type": "array", "items": {"$ref": "#/definitions/http.conversationInfoResp"}}
            }
        },
        "http.conversationResp": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/http.turnResp"}}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Book Chatbot API",
	Description:      "Rule-based book recommendation chatbot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
