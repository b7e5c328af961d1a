package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Portfolio API", "description": "Content API for a faculty portfolio site", "version": "1.0.0"},
    "basePath": "/",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Courses", "description": "Courses and their lectures"},
        {"name": "Publications", "description": "Journals, conferences, thesis and patents"},
        {"name": "Research", "description": "Research interests and projects"},
        {"name": "Watch", "description": "Watch-out-for lists"},
        {"name": "Auth", "description": "Session exchange"},
        {"name": "Ops", "description": "Health and readiness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Liveness",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness, pings the document store",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange an identity provider token",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's refresh tokens",
                "security": [{"BearerAuth": []}],
                "parameters": [],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "course_code", "in": "formData", "type": "string"},
                    {"name": "course_name", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "venue", "in": "formData", "type": "string"},
                    {
                        "name": "prerequisites",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {
                        "name": "references",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {
                        "name": "resources",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {
                        "name": "lectures",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of {name, video}"
                    },
                    {"name": "cover_image", "in": "formData", "type": "file"},
                    {
                        "name": "pdf",
                        "in": "formData",
                        "type": "file",
                        "description": "Lecture PDFs matched to lectures by order"
                    }
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["multipart/form-data"]
            }
        },
        "/api/courses/{id}": {
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "course_code", "in": "formData", "type": "string"},
                    {"name": "course_name", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "venue", "in": "formData", "type": "string"},
                    {
                        "name": "prerequisites",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {
                        "name": "references",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {
                        "name": "resources",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of strings"
                    },
                    {"name": "cover_image", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["multipart/form-data"]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course and its files",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/courses/{id}/lectures": {
            "post": {
                "tags": ["Courses"],
                "summary": "Append lecture",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "name", "in": "formData", "type": "string"},
                    {"name": "video", "in": "formData", "type": "string"},
                    {"name": "pdf", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["multipart/form-data"]
            }
        },
        "/api/courses/{id}/lectures/{lectureIndex}": {
            "put": {
                "tags": ["Courses"],
                "summary": "Update lecture at index",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "lectureIndex",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Zero-based position in the course"
                    },
                    {"name": "name", "in": "formData", "type": "string"},
                    {"name": "video", "in": "formData", "type": "string"},
                    {
                        "name": "lecture_id",
                        "in": "formData",
                        "type": "string",
                        "description": "Must match the lecture at the index when set"
                    },
                    {"name": "pdf", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {
                        "description": "lecture_id mismatch",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "consumes": ["multipart/form-data"]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete lecture at index",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "lectureIndex",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Zero-based position in the course"
                    },
                    {"name": "lecture_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {
                        "description": "lecture_id mismatch",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/api/publications/{section}": {
            "get": {
                "tags": ["Publications"],
                "summary": "List a publication section",
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "journals, conferences, thesis or patents"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Publications"],
                "summary": "Create publication",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "journals, conferences, thesis or patents"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreatePublicationRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/publications/{section}/{id}": {
            "put": {
                "tags": ["Publications"],
                "summary": "Update publication",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "journals, conferences, thesis or patents"
                    },
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdatePublicationRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Publications"],
                "summary": "Delete publication",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "journals, conferences, thesis or patents"
                    },
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/publications/{section}/export": {
            "get": {
                "tags": ["Publications"],
                "summary": "Download a section",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "journals, conferences, thesis or patents"
                    },
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/research/interests": {
            "get": {
                "tags": ["Research"],
                "summary": "Get research interests",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Research"],
                "summary": "Replace research interests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SaveInterestsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Research"],
                "summary": "Replace research interests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SaveInterestsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/research/projects": {
            "get": {
                "tags": ["Research"],
                "summary": "List research projects",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Research"],
                "summary": "Create research project",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "heading", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "images", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["multipart/form-data"]
            }
        },
        "/api/research/projects/{id}": {
            "put": {
                "tags": ["Research"],
                "summary": "Update research project",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "heading", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {
                        "name": "imagesToDelete",
                        "in": "formData",
                        "type": "string",
                        "description": "JSON array of storage paths"
                    },
                    {"name": "images", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["multipart/form-data"]
            },
            "delete": {
                "tags": ["Research"],
                "summary": "Delete research project and its images",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/watch/{category}": {
            "get": {
                "tags": ["Watch"],
                "summary": "List a watch-out-for category",
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "competitions, journals or reads"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Watch"],
                "summary": "Create watch item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "competitions, journals or reads"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateWatchItemRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/watch/{category}/{id}": {
            "put": {
                "tags": ["Watch"],
                "summary": "Update watch item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "competitions, journals or reads"
                    },
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateWatchItemRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Watch"],
                "summary": "Delete watch item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "competitions, journals or reads"
                    },
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {"type": "object", "properties": {"idToken": {"type": "string"}}, "required": ["idToken"]},
        "CreatePublicationRequest": {
            "type": "object",
            "properties": {"heading": {"type": "string"}, "description": {"type": "string"}, "link": {"type": "string"}},
            "required": ["heading", "description"]
        },
        "UpdatePublicationRequest": {
            "type": "object",
            "properties": {"heading": {"type": "string"}, "description": {"type": "string"}, "link": {"type": "string"}}
        },
        "CreateWatchItemRequest": {
            "type": "object",
            "properties": {"heading": {"type": "string"}, "link": {"type": "string"}},
            "required": ["heading"]
        },
        "UpdateWatchItemRequest": {"type": "object", "properties": {"heading": {"type": "string"}, "link": {"type": "string"}}},
        "InterestInput": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "heading": {"type": "string"}, "description": {"type": "string"}},
            "required": ["heading"]
        },
        "SaveInterestsRequest": {
            "type": "object",
            "properties": {
                "heading": {"type": "string"},
                "paragraph": {"type": "string"},
                "interests": {"type": "array", "items": {"$ref": "#/definitions/InterestInput"}}
            },
            "required": ["heading", "paragraph", "interests"]
        },
        "FieldError": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}},
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}
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
