// Package schemadoc renders a declarative validation schema as a flattened,
// human-and-model-readable field listing. The listing is embedded in prompts
// so a language model knows what shape of answer is expected: one line per
// field with its path, compact type signature, optionality, and description.
//
// The package owns a neutral tagged-variant schema model instead of
// reflecting into any particular validation library; adapters such as
// [FromJSONSchema] translate concrete representations into it. Introspection
// never returns an error: anything it does not recognize degrades to the
// unknown type, since the output feeds best-effort documentation to a model,
// not data validation.
package schemadoc
