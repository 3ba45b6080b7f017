// Package openapi embeds the OpenAPI YAML description of the cart API and
// the Swagger UI page that renders it.
package openapi

import _ "embed"

// YAML contains the embedded OpenAPI document.
//
//go:embed openapi.yaml
var YAML []byte

// DocsHTML is the Swagger UI page pointing at /openapi.yaml.
//
//go:embed docs.html
var DocsHTML []byte
