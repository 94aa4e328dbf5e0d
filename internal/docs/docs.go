// Package docs holds the Swagger description served at /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "User registered and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input or password mismatch", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "User authenticated and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "423": {"description": "Account locked", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "New tokens", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid or revoked token", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Logged out"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Get user profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "User profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolio": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["portfolio"],
                "summary": "Portfolio overview",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Portfolio", "schema": {"$ref": "#/definitions/handlers.PortfolioResponse"}},
                    "500": {"description": "Data inconsistency", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Quotes unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/quotes/{symbol}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotes"],
                "summary": "Get a stock quote",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Quote", "schema": {"$ref": "#/definitions/handlers.QuoteResponse"}},
                    "400": {"description": "Invalid symbol", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Quotes unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/trades/buy": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Buy shares",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Bought", "schema": {"$ref": "#/definitions/handlers.TradeResponse"}},
                    "400": {"description": "Invalid input, invalid symbol or insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Quotes unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/trades/sell": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Sell shares",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Sold", "schema": {"$ref": "#/definitions/handlers.TradeResponse"}},
                    "400": {"description": "Invalid input, invalid symbol or insufficient shares", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Quotes unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Trade history",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Only this symbol", "name": "symbol", "in": "query"},
                    {"type": "string", "description": "purchase or sale", "name": "type", "in": "query"},
                    {"type": "string", "description": "Earliest time, RFC3339 or YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Latest time, RFC3339 or YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Trades"},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["username", "password", "confirmation"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "confirmation": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "cash": {"type": "string"},
                "cash_display": {"type": "string"}
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.QuoteResponse": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "price_display": {"type": "string"},
                "currency": {"type": "string"},
                "as_of": {"type": "string"}
            }
        },
        "handlers.TradeRequest": {
            "type": "object",
            "required": ["symbol", "shares"],
            "properties": {
                "symbol": {"type": "string"},
                "shares": {"type": "integer", "minimum": 1}
            }
        },
        "handlers.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "symbol": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "unit_price_display": {"type": "string"},
                "total": {"type": "string"},
                "total_display": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handlers.TradeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "transaction": {"$ref": "#/definitions/handlers.TransactionResponse"}
            }
        },
        "handlers.PositionResponse": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "quantity_held": {"type": "integer"},
                "average_cost_basis": {"type": "string"},
                "average_cost_basis_display": {"type": "string"},
                "current_price": {"type": "string"},
                "current_price_display": {"type": "string"},
                "market_value": {"type": "string"},
                "market_value_display": {"type": "string"},
                "lifetime_return": {"type": "string"},
                "lifetime_return_display": {"type": "string"}
            }
        },
        "handlers.PortfolioResponse": {
            "type": "object",
            "properties": {
                "positions": {"type": "array", "items": {"$ref": "#/definitions/handlers.PositionResponse"}},
                "cash": {"type": "string"},
                "cash_display": {"type": "string"},
                "holdings_value": {"type": "string"},
                "holdings_value_display": {"type": "string"},
                "total_value": {"type": "string"},
                "total_value_display": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Papertrade API",
	Description:      "Papertrade is a stock-trading simulator: buy and sell shares at live prices with simulated cash and track your positions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
