//go:build swagger
// +build swagger

// Package docs provides OpenAPI/Swagger documentation for the corpus
// annotation and alignment engine API. This file is used solely for
// OpenAPI spec generation via `swag init` and is never compiled into the
// running service.
package docs

// @title Corpus Annotation & Alignment Engine API
// @version 2.0
// @description Property-graph backed service for literary corpus texts, editions, segmentation, alignment and related-segment traversal.

// @host localhost:8080
// @BasePath /v2

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key issued via POST /v2/api-keys.

// @schemes http https
