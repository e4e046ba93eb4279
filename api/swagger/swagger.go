package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Beehayv API",
        "description": "Behavior tracking over flat files: subjects, behavior definitions, daily scores and periodic averages",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Subjects", "description": "Tracked subjects"},
        {"name": "Definitions", "description": "Behavior definitions per subject"},
        {"name": "Scores", "description": "Daily 1-10 score log"},
        {"name": "Averages", "description": "Weekly, monthly and semi-annual aggregates"},
        {"name": "Tables", "description": "Raw table inspection"},
        {"name": "Dashboard", "description": "Overview"},
        {"name": "Exports", "description": "CSV/PDF snapshots"}
    ],
    "paths": {
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Register a subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate label", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/definitions": {
            "get": {
                "tags": ["Definitions"],
                "summary": "List behavior definitions",
                "parameters": [
                    {"name": "subject_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Definitions"],
                "summary": "Define a tracked behavior",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDefinitionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Subject not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/definitions/{id}": {
            "get": {
                "tags": ["Definitions"],
                "summary": "Get behavior definition",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scores": {
            "get": {
                "tags": ["Scores"],
                "summary": "List logged scores, newest first",
                "parameters": [
                    {"name": "definition_id", "in": "query", "type": "integer"},
                    {"name": "date_from", "in": "query", "type": "string"},
                    {"name": "date_to", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Scores"],
                "summary": "Log a daily score",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LogScoreRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Score out of range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Definition not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/averages/recalculate": {
            "post": {
                "tags": ["Averages"],
                "summary": "Rebuild all average tables from the score log",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/averages/weekly": {
            "get": {
                "tags": ["Averages"],
                "summary": "List weekly averages",
                "parameters": [
                    {"name": "definition_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/averages/monthly": {
            "get": {
                "tags": ["Averages"],
                "summary": "List monthly averages",
                "parameters": [
                    {"name": "definition_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/averages/semi-annual": {
            "get": {
                "tags": ["Averages"],
                "summary": "List semi-annual averages",
                "parameters": [
                    {"name": "definition_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/averages/{period}/series": {
            "get": {
                "tags": ["Averages"],
                "summary": "Chart-ready progress series for one definition",
                "parameters": [
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "definition_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tables": {
            "get": {
                "tags": ["Tables"],
                "summary": "List viewable table names",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tables/{name}": {
            "get": {
                "tags": ["Tables"],
                "summary": "View one table exactly as persisted",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export a table snapshot to CSV or PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated export via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Subject": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "integer"},
                "subject_label": {"type": "string"},
                "date_created": {"type": "string"}
            }
        },
        "BehaviorDefinition": {
            "type": "object",
            "properties": {
                "definition_id": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "behavior_name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "DailyScore": {
            "type": "object",
            "properties": {
                "log_id": {"type": "integer"},
                "definition_id": {"type": "integer"},
                "date": {"type": "string"},
                "score": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "label": {"type": "string"}
            },
            "required": ["label"]
        },
        "CreateDefinitionRequest": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["subject_id", "name"]
        },
        "LogScoreRequest": {
            "type": "object",
            "properties": {
                "definition_id": {"type": "integer"},
                "date": {"type": "string"},
                "score": {"type": "integer"},
                "notes": {"type": "string"}
            },
            "required": ["definition_id", "date", "score"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "table": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["table", "format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
