// Package docs registra el documento OpenAPI servido en /swagger/*.
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
        "/health": {"get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
        "/refresh": {"post": {"tags": ["tracker"], "summary": "Recargar desde el almacenamiento", "responses": {"200": {"description": "OK"}}}},
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Listar mascotas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}, "402": {"description": "limit reached"}}}
        },
        "/pets/{petID}": {
            "patch": {"tags": ["pets"], "summary": "Editar mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota con sus cuidados y recordatorios", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not found"}}}
        },
        "/pets/{petID}/next-care": {"get": {"tags": ["pets"], "summary": "Próximo cuidado de la mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}},
        "/onboarding": {"post": {"tags": ["pets"], "summary": "Crear mascota con cuidados iniciales", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}, "402": {"description": "limit reached"}}}},
        "/care-items": {
            "get": {"tags": ["care"], "summary": "Listar cuidados", "parameters": [{"type": "string", "name": "pet_id", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["care"], "summary": "Crear cuidado", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}, "402": {"description": "limit reached"}}}
        },
        "/care-items/{itemID}": {
            "patch": {"tags": ["care"], "summary": "Editar cuidado", "parameters": [{"type": "string", "name": "itemID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}},
            "delete": {"tags": ["care"], "summary": "Borrar cuidado", "parameters": [{"type": "string", "name": "itemID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not found"}}}
        },
        "/reminders": {
            "get": {"tags": ["reminders"], "summary": "Listar recordatorios", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reminders"], "summary": "Crear recordatorio (pet_ids para varias mascotas)", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}, "402": {"description": "limit reached"}}}
        },
        "/reminders/{reminderID}": {
            "patch": {"tags": ["reminders"], "summary": "Editar recordatorio", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}},
            "delete": {"tags": ["reminders"], "summary": "Borrar recordatorio", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not found"}}}
        },
        "/reminders/{reminderID}/toggle": {"post": {"tags": ["reminders"], "summary": "Activar o desactivar recordatorio", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}},
        "/limits": {"get": {"tags": ["tracker"], "summary": "Capacidad del tier (can_add por recurso)", "responses": {"200": {"description": "OK"}}}},
        "/upcoming": {"get": {"tags": ["upcoming"], "summary": "Próximos cuidados y recordatorios", "parameters": [{"type": "integer", "name": "days", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "days must be a positive integer"}}}},
        "/settings": {"get": {"tags": ["settings"], "summary": "Configuración", "responses": {"200": {"description": "OK"}}}},
        "/settings/upcoming-care-days": {"put": {"tags": ["settings"], "summary": "Cambiar ventana de próximos cuidados", "responses": {"200": {"description": "OK"}, "400": {"description": "invalid input"}}}},
        "/entitlements": {"get": {"tags": ["entitlements"], "summary": "Estado premium", "responses": {"200": {"description": "OK"}}}},
        "/entitlements/refresh": {"post": {"tags": ["entitlements"], "summary": "Restaurar compras", "responses": {"200": {"description": "OK"}, "502": {"description": "purchase provider unavailable"}}}},
        "/entitlements/redeem": {"post": {"tags": ["entitlements"], "summary": "Canjear cupón", "responses": {"200": {"description": "OK"}, "400": {"description": "invalid coupon code"}}}},
        "/ws": {"get": {"tags": ["realtime"], "summary": "Stream de recordatorios vencidos (websocket)", "responses": {"101": {"description": "Switching Protocols"}}}}
    }
}`

// SwaggerInfo contiene la metadata exportada del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PetCare Tracker API",
	Description:      "Mascotas, cuidados, recordatorios y feed de próximos eventos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
