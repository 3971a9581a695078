// Package api ships the OpenAPI contract with the binary.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
