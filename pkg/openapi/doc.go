// Package openapi exposes the public contracts for loading OpenAPI documents
// and extracting the component schema the worker form is built from.
// Implementations live under internal/openapi to keep kin-openapi types hidden
// from consumers.
package openapi
