// Package docs is generated by swag from the storefront-gateway annotations.
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
        "/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "The caller's orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.View"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validated against a fresh stock read, then sent once. Never retried.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order for one product",
                "parameters": [
                    {"description": "order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.PlaceOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "One of the caller's orders",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.View"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/orders/{id}/cancel": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Retried up to three times. Returns 204 when nothing was done: the order is not cancellable, confirm was not true, or a cancel is already running.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Cancel one of the caller's orders",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "must be true to proceed", "name": "confirm", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.View"}},
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/orders/{id}/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Client-side activity recorded for an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "max events, newest first", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/journal.Event"}}}
                }
            }
        },
        "/products": {
            "get": {
                "description": "Products with a known stock of zero are left out; unknown stock is listed.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List available products",
                "parameters": [
                    {"type": "string", "description": "category, or all", "name": "category", "in": "query"},
                    {"type": "string", "description": "keyword in name or description", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List product categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Product with a fresh stock snapshot",
                "parameters": [
                    {"type": "integer", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.DetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "journal.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "orderId": {"type": "integer"},
                "userId": {"type": "integer"},
                "productId": {"type": "integer"},
                "quantity": {"type": "integer"},
                "attempts": {"type": "integer"},
                "detail": {"type": "string"},
                "at": {"type": "string"}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "productId": {"type": "integer"},
                "productName": {"type": "string"},
                "productPrice": {"type": "number"},
                "quantity": {"type": "integer"},
                "subtotal": {"type": "number"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "username": {"type": "string"},
                "orderStatus": {"type": "string", "enum": ["PENDING", "CONFIRMED", "AWAITING_SHIPMENT", "SHIPPED", "IN_TRANSIT", "DELIVERED", "CANCELLED", "REFUNDED"]},
                "totalPrice": {"type": "number"},
                "deliveryAddress": {"type": "string"},
                "orderDate": {"type": "string"},
                "orderItems": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}}
            }
        },
        "order.PlaceOrderRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer", "example": 3},
                "quantity": {"type": "integer", "example": 2},
                "deliveryAddress": {"type": "string", "example": "12 George St, Sydney NSW 2000"}
            }
        },
        "order.View": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "orderStatus": {"type": "string"},
                "totalPrice": {"type": "number"},
                "deliveryAddress": {"type": "string"},
                "orderDate": {"type": "string"},
                "orderItems": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "cancellable": {"type": "boolean"},
                "cancelling": {"type": "boolean"},
                "colorClass": {"type": "string"},
                "final": {"type": "boolean"}
            }
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"},
                "imageUrl": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "product.Listed": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/product.Product"},
                "stock": {"type": "integer", "x-nullable": true}
            }
        },
        "product.ListResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "q": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Listed"}}
            }
        },
        "product.DetailResponse": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/product.Product"},
                "stock": {"type": "integer", "x-nullable": true},
                "available": {"type": "boolean"},
                "maxQuantity": {"type": "integer"}
            }
        },
        "product.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "product not found"},
                "code": {"type": "string", "example": "insufficient_stock"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Storefront Gateway API",
	Description:      "Product availability, order placement and cancellation for the storefront UI.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
