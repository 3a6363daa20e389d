// Package jsonschema generates a basic JSON Schema from a Go type via
// reflection. It understands json struct tags plus a small jsonschema tag
// vocabulary (description, enum, required) and is used to describe the
// character record a caller wants the evaluator to maintain.
package jsonschema
