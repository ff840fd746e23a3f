// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "contact": {"name": "API Support", "url": "https://github.com/storefront/backend"},
        "license": {"name": "Apache 2.0", "url": "http://www.apache.org/licenses/LICENSE-2.0.html"},
        "version": "{{.Version}}"
    },
    "servers": [{"url": "//{{.Host}}{{.BasePath}}"}],
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
        },
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "message": {"type": "string"},
                    "data": {},
                    "error": {"$ref": "#/components/schemas/ErrorInfo"},
                    "meta": {"$ref": "#/components/schemas/Meta"}
                }
            },
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {"type": "string", "example": "ERR_VALIDATION"},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"},
                    "details": {"type": "array", "items": {"type": "object"}},
                    "timestamp": {"type": "string", "format": "date-time"}
                }
            },
            "Meta": {
                "type": "object",
                "properties": {
                    "total": {"type": "integer"},
                    "page": {"type": "integer"},
                    "page_size": {"type": "integer"},
                    "total_pages": {"type": "integer"}
                }
            },
            "Credentials": {
                "type": "object",
                "properties": {
                    "email": {"type": "string", "example": "jane@example.com"},
                    "password": {"type": "string", "example": "secret123"}
                }
            },
            "Registration": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "email": {"type": "string"},
                    "password": {"type": "string"},
                    "phone": {"type": "string"},
                    "address": {"type": "string"},
                    "answer": {"type": "string"}
                }
            },
            "Checkout": {
                "type": "object",
                "properties": {
                    "nonce": {"type": "string", "example": "fake-valid-nonce"},
                    "cart": {
                        "type": "array",
                        "items": {"type": "object", "properties": {"_id": {"type": "string", "format": "uuid"}}}
                    }
                }
            },
            "StatusChange": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["Not Process", "Processing", "Shipped", "deliverd", "cancel"]}
                }
            }
        },
        "responses": {
            "OK": {"description": "Success", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}},
            "Error": {"description": "Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}
        }
    },
    "paths": {
        "/": {"get": {"tags": ["system"], "summary": "Welcome message", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"$ref": "#/components/responses/OK"}, "503": {"$ref": "#/components/responses/Error"}}}},
        "/auth/register": {"post": {
            "tags": ["auth"], "summary": "Register a customer",
            "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Registration"}}}},
            "responses": {"201": {"$ref": "#/components/responses/OK"}, "400": {"$ref": "#/components/responses/Error"}}
        }},
        "/auth/login": {"post": {
            "tags": ["auth"], "summary": "Log in",
            "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Credentials"}}}},
            "responses": {"200": {"$ref": "#/components/responses/OK"}, "404": {"$ref": "#/components/responses/Error"}}
        }},
        "/auth/forgot-password": {"post": {"tags": ["auth"], "summary": "Reset password with the security answer", "responses": {"200": {"$ref": "#/components/responses/OK"}, "404": {"$ref": "#/components/responses/Error"}}}},
        "/auth/user-auth": {"get": {"tags": ["auth"], "summary": "Signed-in probe", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}, "401": {"$ref": "#/components/responses/Error"}}}},
        "/auth/admin-auth": {"get": {"tags": ["auth"], "summary": "Admin probe", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}, "401": {"$ref": "#/components/responses/Error"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/auth/profile": {"put": {"tags": ["auth"], "summary": "Update own profile", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}, "400": {"$ref": "#/components/responses/Error"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Revoke the current token", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/auth/orders": {"get": {"tags": ["orders"], "summary": "Orders of the signed-in buyer", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/auth/all-orders": {"get": {
            "tags": ["orders"], "summary": "All orders (admin)", "security": [{"BearerAuth": []}],
            "parameters": [
                {"name": "page", "in": "query", "schema": {"type": "integer"}},
                {"name": "page_size", "in": "query", "schema": {"type": "integer"}}
            ],
            "responses": {"200": {"$ref": "#/components/responses/OK"}}
        }},
        "/auth/order-status/{orderId}": {"put": {
            "tags": ["orders"], "summary": "Change order status (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"name": "orderId", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
            "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/StatusChange"}}}},
            "responses": {"200": {"$ref": "#/components/responses/OK"}, "400": {"$ref": "#/components/responses/Error"}, "422": {"$ref": "#/components/responses/Error"}}
        }},
        "/category/create-category": {"post": {"tags": ["category"], "summary": "Create a category (admin)", "security": [{"BearerAuth": []}], "responses": {"201": {"$ref": "#/components/responses/OK"}}}},
        "/category/update-category/{id}": {"put": {"tags": ["category"], "summary": "Rename a category (admin)", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/category/get-category": {"get": {"tags": ["category"], "summary": "List categories", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/category/single-category/{slug}": {"get": {"tags": ["category"], "summary": "Get a category", "responses": {"200": {"$ref": "#/components/responses/OK"}, "404": {"$ref": "#/components/responses/Error"}}}},
        "/category/delete-category/{id}": {"delete": {"tags": ["category"], "summary": "Delete a category (admin)", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}, "409": {"$ref": "#/components/responses/Error"}}}},
        "/product/create-product": {"post": {"tags": ["product"], "summary": "Create a product from a multipart form (admin)", "security": [{"BearerAuth": []}], "responses": {"201": {"$ref": "#/components/responses/OK"}}}},
        "/product/update-product/{pid}": {"put": {"tags": ["product"], "summary": "Update a product (admin)", "security": [{"BearerAuth": []}], "responses": {"201": {"$ref": "#/components/responses/OK"}}}},
        "/product/get-product": {"get": {"tags": ["product"], "summary": "Newest products", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/get-product/{slug}": {"get": {"tags": ["product"], "summary": "Get a product", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/product-photo/{pid}": {"get": {"tags": ["product"], "summary": "Product photo bytes", "responses": {"200": {"description": "Image"}, "404": {"$ref": "#/components/responses/Error"}}}},
        "/product/delete-product/{pid}": {"delete": {"tags": ["product"], "summary": "Delete a product (admin)", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/product-filters": {"post": {"tags": ["product"], "summary": "Filter by categories and price range", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/product-count": {"get": {"tags": ["product"], "summary": "Count products", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/product-list/{page}": {"get": {"tags": ["product"], "summary": "One page of products", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/search/{keyword}": {"get": {"tags": ["product"], "summary": "Search name and description", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/related-product/{pid}/{cid}": {"get": {"tags": ["product"], "summary": "Related products", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/product-category/{slug}": {"get": {"tags": ["product"], "summary": "Products of a category", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/braintree/token": {"get": {"tags": ["checkout"], "summary": "Client token for the payment UI", "responses": {"200": {"$ref": "#/components/responses/OK"}}}},
        "/product/braintree/payment": {"post": {
            "tags": ["checkout"], "summary": "Pay for a cart", "security": [{"BearerAuth": []}],
            "parameters": [{"name": "Idempotency-Key", "in": "header", "schema": {"type": "string"}}],
            "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Checkout"}}}},
            "responses": {"200": {"$ref": "#/components/responses/OK"}, "402": {"$ref": "#/components/responses/Error"}, "409": {"$ref": "#/components/responses/Error"}}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Backend of a single-merchant web store: accounts, catalog, checkout and order fulfilment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
