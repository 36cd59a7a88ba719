package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Advisory API",
        "description": "Course recommendation and academic policy engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Advisor authentication"},
        {"name": "Recommendations", "description": "Eligibility-filtered course recommendations"},
        {"name": "Enrollments", "description": "Enrollment add/withdraw with policy checks"},
        {"name": "Enrollment window", "description": "Enrollment window administration"},
        {"name": "Graduation", "description": "Graduation progress evaluation"},
        {"name": "Evaluation", "description": "Academic evaluation and risk assessment"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Advisor login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/students/{id}/recommendations": {
            "get": {
                "tags": ["Recommendations"],
                "summary": "Course recommendations for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Recommendations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll a student in courses",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Enrollments created"},
                    "422": {"description": "Policy violation or window closed"}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Withdraw a student from courses",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "Withdrawn course ids"},
                    "422": {"description": "Window closed"}
                }
            }
        },
        "/students/{id}/graduation": {
            "get": {
                "tags": ["Graduation"],
                "summary": "Graduation eligibility",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Graduation report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/graduation/report": {
            "get": {
                "tags": ["Graduation"],
                "summary": "Downloadable graduation report",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/students/{id}/evaluation": {
            "get": {
                "tags": ["Evaluation"],
                "summary": "Academic evaluation and risk assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Evaluation report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollment-window": {
            "post": {
                "tags": ["Enrollment window"],
                "summary": "Configure the enrollment window",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetWindowRequest"}}
                ],
                "responses": {
                    "200": {"description": "Window stored"},
                    "400": {"description": "Invalid bounds"}
                }
            },
            "get": {
                "tags": ["Enrollment window"],
                "summary": "Current window configuration",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Window"}
                }
            }
        },
        "/enrollment-window/status": {
            "get": {
                "tags": ["Enrollment window"],
                "summary": "Window status",
                "responses": {
                    "200": {"description": "Status"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "course_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "SetWindowRequest": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "2026-09-01 08:00:00"},
                "end": {"type": "string", "example": "2026-09-15 23:59:59"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
