package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Room Scheduling API",
        "description": "Buildings, rooms, courses, users and weekly room schedules.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Token issuance"},
        {"name": "Buildings", "description": "Building catalogue (bare payloads)"},
        {"name": "Rooms", "description": "Rooms inside buildings (bare payloads)"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Users", "description": "Accounts and personal timetables"},
        {"name": "Schedules", "description": "Per room, per day slot assignments"},
        {"name": "Submits", "description": "Room submission history"},
        {"name": "Dashboard", "description": "Entity counters"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/buildings": {
            "get": {"tags": ["Buildings"], "summary": "List buildings", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Building"}}}}},
            "post": {"tags": ["Buildings"], "summary": "Create a building (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/BuildingRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/BuildingEnvelope"}}}}
        },
        "/buildings/{id}": {
            "patch": {"tags": ["Buildings"], "summary": "Update a building (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/BuildingRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/BuildingEnvelope"}}}},
            "delete": {"tags": ["Buildings"], "summary": "Delete a building (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "409": {"description": "Still referenced by rooms", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}}}
        },
        "/rooms": {
            "get": {"tags": ["Rooms"], "summary": "List rooms with their building", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Room"}}}}},
            "post": {"tags": ["Rooms"], "summary": "Create a room (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Room"}}}}
        },
        "/rooms/{id}": {
            "patch": {"tags": ["Rooms"], "summary": "Update a room (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Room"}}}},
            "delete": {"tags": ["Rooms"], "summary": "Delete a room and its schedules (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}}}
        },
        "/courses": {
            "get": {"tags": ["Courses"], "summary": "List courses", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Courses"], "summary": "Create a course (admin)", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/courses/{id}": {
            "patch": {"tags": ["Courses"], "summary": "Update a course (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Courses"], "summary": "Delete a course (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}}}
        },
        "/users": {
            "get": {"tags": ["Users"], "summary": "List users", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Users"], "summary": "Create a user (admin)", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}
        },
        "/users/{id}": {
            "patch": {"tags": ["Users"], "summary": "Update a user (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Users"], "summary": "Delete a user (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}}}
        },
        "/users/{id}/timetable": {
            "get": {"tags": ["Users"], "summary": "Weekly timetable of one teacher", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TimetableResponse"}}}}
        },
        "/users/{id}/timetable/export": {
            "get": {"tags": ["Users"], "summary": "Download a timetable as csv, pdf or xlsx", "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf", "xlsx"]}],
                "responses": {"200": {"description": "Attachment"}, "400": {"description": "Unsupported format"}}}
        },
        "/schedules": {
            "get": {"tags": ["Schedules"], "summary": "List all schedules", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Schedules"], "summary": "Create a schedule (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleWrite"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Rejected by a scheduling rule"}}}
        },
        "/schedules/{id}": {
            "get": {"tags": ["Schedules"], "summary": "List the schedules of one room", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true, "description": "room id"}],
                "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Schedules"], "summary": "Partially update a schedule (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleWrite"}}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Schedules"], "summary": "Delete a schedule (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}}}
        },
        "/submits": {
            "get": {"tags": ["Submits"], "summary": "Paginated submission history", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "user_id", "type": "integer"},
                    {"in": "query", "name": "start_date", "type": "string", "format": "date"},
                    {"in": "query", "name": "end_date", "type": "string", "format": "date"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SubmitPage"}}}}
        },
        "/dashboard": {
            "get": {"tags": ["Dashboard"], "summary": "Entity counters", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardCounts"}}}}
        }
    },
    "definitions": {
        "LoginRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginEnvelope": {"type": "object",
            "properties": {"data": {"type": "object", "properties": {
                "access_token": {"type": "string"}, "expires_in": {"type": "integer"},
                "user": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}}}}}}},
        "Building": {"type": "object", "properties": {
            "id": {"type": "integer"}, "name": {"type": "string"}, "code": {"type": "string"},
            "floor": {"type": "integer"}, "status": {"type": "string"}}},
        "BuildingRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "code": {"type": "string"}, "floor": {"type": "integer"}, "status": {"type": "string"}}},
        "BuildingEnvelope": {"type": "object", "properties": {"building": {"$ref": "#/definitions/Building"}}},
        "Room": {"type": "object", "properties": {
            "id": {"type": "integer"}, "name": {"type": "string"}, "floor": {"type": "integer"},
            "status": {"type": "boolean"}, "building_id": {"type": "integer"}, "building": {"$ref": "#/definitions/Building"}}},
        "RoomRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "floor": {"type": "integer"}, "status": {"type": "boolean"}, "building_id": {"type": "integer"}}},
        "ScheduleWrite": {"type": "object", "properties": {
            "room_id": {"type": "integer"}, "day": {"type": "string"},
            "time_7_9_am": {"type": "integer"}, "time_7_9_am_course": {"type": "integer"},
            "time_9_11_am": {"type": "integer"}, "time_9_11_am_course": {"type": "integer"},
            "time_1_3_pm": {"type": "integer"}, "time_1_3_pm_course": {"type": "integer"},
            "time_3_5_pm": {"type": "integer"}, "time_3_5_pm_course": {"type": "integer"}}},
        "TimetableResponse": {"type": "object", "properties": {
            "timetable": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "object"}}}}},
        "SubmitPage": {"type": "object", "properties": {
            "data": {"type": "array", "items": {"type": "object"}},
            "current_page": {"type": "integer"}, "per_page": {"type": "integer"}, "total": {"type": "integer"}, "last_page": {"type": "integer"}}},
        "DashboardCounts": {"type": "object", "properties": {
            "users_count": {"type": "integer"}, "courses_count": {"type": "integer"}, "buildings_count": {"type": "integer"},
            "rooms_count": {"type": "integer"}, "submits_count": {"type": "integer"}, "schedules_count": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {
            "code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"},
            "fields": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "ErrorEnvelope": {"type": "object", "properties": {"error": {"$ref": "#/definitions/APIError"}}}
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
