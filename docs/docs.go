// Package docs registers the OpenAPI description of the HTTP API with swag.
// Keep it in sync with the annotations in internal/handler.
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
        "/kukai/inspect": {
            "post": {
                "description": "Reports version, wallet type and address of a Kukai backup without decrypting it",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "kukai"
                ],
                "summary": "Inspect backup",
                "parameters": [
                    {
                        "description": "Backup",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.InspectRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.InspectResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/kukai/reveal": {
            "post": {
                "description": "Decrypts a Kukai v3 backup and returns its BIP-39 seed phrase",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "kukai"
                ],
                "summary": "Reveal seed phrase",
                "parameters": [
                    {
                        "description": "Backup and password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.RevealRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.RevealResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "model.InspectRequest": {
            "type": "object",
            "required": [
                "backup"
            ],
            "properties": {
                "backup": {
                    "type": "object"
                }
            }
        },
        "model.InspectResponse": {
            "type": "object",
            "properties": {
                "pkh": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "supported": {
                    "type": "boolean"
                },
                "version": {
                    "type": "string"
                },
                "walletType": {
                    "type": "string"
                }
            }
        },
        "model.RevealRequest": {
            "type": "object",
            "required": [
                "backup",
                "password"
            ],
            "properties": {
                "backup": {
                    "type": "object"
                },
                "password": {
                    "type": "string"
                },
                "qr": {
                    "type": "boolean"
                }
            }
        },
        "model.RevealResponse": {
            "type": "object",
            "properties": {
                "QR": {
                    "description": "base64 PNG",
                    "type": "string"
                },
                "mnemonic": {
                    "type": "string"
                },
                "wordCount": {
                    "type": "integer"
                }
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
	Title:            "Kukai seed recovery API",
	Description:      "Local-only API that recovers BIP-39 seed phrases from legacy Kukai v3 backups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
