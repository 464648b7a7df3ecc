// Package openapi describes the operation registry as an OpenAPI 3 document.
// Each operation becomes a POST endpoint whose request body schema mirrors
// the form the renderers present: one property per parameter, enums for
// selects and a required list from the parameter hints.
package openapi
