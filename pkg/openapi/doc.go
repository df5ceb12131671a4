// Package openapi exports form versions as OpenAPI 3 schemas describing the
// submission payload, so downstream services can validate declarations
// without linking the resolver.
package openapi
