package schemadoc

// Kind identifies the semantic variant of a [Schema] node.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindDate
	KindBigInt
	KindLiteral
	KindEnum
	KindNativeEnum
	KindNull
	KindUndefined
	KindAny
	KindArray
	KindRecord
	KindUnion
	KindDiscriminatedUnion
	KindObject
	KindTuple

	// Transparent wrapper kinds, peeled away by Unwrap.
	KindOptional
	KindNullable
	KindDefault
	KindBranded
	KindReadonly
	KindPipeline
	KindEffects
	KindCatch
)

// Schema is one node of the neutral schema model. Exactly which fields are
// populated depends on Kind; unpopulated links are simply nil.
type Schema struct {
	Kind        Kind
	Description string

	// Wrapper links, followed by Unwrap in this priority order.
	Inner   *Schema // optional/nullable-style inner type
	Wrapped *Schema // wrapped validation schema (pipelines, effects)
	Under   *Schema // wrapped underlying type (brands)

	Elem    *Schema   // array element or record value type
	Options []*Schema // union options or tuple items
	Fields  []Field   // object fields in declaration order
	Values  []string  // enum values
	Literal any       // literal value
}

// Field is one declared key of an object schema.
type Field struct {
	Name   string
	Schema *Schema
}

// Doc attaches a human-readable description and returns the node for
// chaining.
func (s *Schema) Doc(text string) *Schema {
	s.Description = text
	return s
}

func String() *Schema  { return &Schema{Kind: KindString} }
func Number() *Schema  { return &Schema{Kind: KindNumber} }
func Boolean() *Schema { return &Schema{Kind: KindBoolean} }
func Date() *Schema    { return &Schema{Kind: KindDate} }
func BigInt() *Schema  { return &Schema{Kind: KindBigInt} }

func Null() *Schema      { return &Schema{Kind: KindNull} }
func Undefined() *Schema { return &Schema{Kind: KindUndefined} }
func Any() *Schema       { return &Schema{Kind: KindAny} }
func Unknown() *Schema   { return &Schema{Kind: KindUnknown} }

// Literal describes a schema accepting exactly one value.
func Literal(value any) *Schema {
	return &Schema{Kind: KindLiteral, Literal: value}
}

// Enum describes a closed set of string values.
func Enum(values ...string) *Schema {
	return &Schema{Kind: KindEnum, Values: values}
}

// NativeEnum describes an enum whose members are opaque to introspection.
func NativeEnum() *Schema { return &Schema{Kind: KindNativeEnum} }

// ArrayOf describes an ordered sequence of elem.
func ArrayOf(elem *Schema) *Schema {
	return &Schema{Kind: KindArray, Elem: elem}
}

// RecordOf describes a string-keyed mapping with values of value.
func RecordOf(value *Schema) *Schema {
	return &Schema{Kind: KindRecord, Elem: value}
}

// Union describes a value matching any one of options.
func Union(options ...*Schema) *Schema {
	return &Schema{Kind: KindUnion, Options: options}
}

// DiscriminatedUnion renders exactly like Union; the discriminant key is
// not part of the textual signature.
func DiscriminatedUnion(options ...*Schema) *Schema {
	return &Schema{Kind: KindDiscriminatedUnion, Options: options}
}

// Tuple describes a fixed-length heterogeneous sequence.
func Tuple(items ...*Schema) *Schema {
	return &Schema{Kind: KindTuple, Options: items}
}

// Object describes a record with declared keys. Field order is preserved.
func Object(fields ...Field) *Schema {
	return &Schema{Kind: KindObject, Fields: fields}
}

// F builds one object field.
func F(name string, s *Schema) Field {
	return Field{Name: name, Schema: s}
}

func Optional(s *Schema) *Schema { return &Schema{Kind: KindOptional, Inner: s} }
func Nullable(s *Schema) *Schema { return &Schema{Kind: KindNullable, Inner: s} }
func Readonly(s *Schema) *Schema { return &Schema{Kind: KindReadonly, Inner: s} }
func Catch(s *Schema) *Schema    { return &Schema{Kind: KindCatch, Inner: s} }

// WithDefault marks s as defaulted; a defaulted field tolerates absence.
func WithDefault(s *Schema) *Schema { return &Schema{Kind: KindDefault, Inner: s} }

// Pipeline wraps the schema validated by a transformation pipeline.
func Pipeline(s *Schema) *Schema { return &Schema{Kind: KindPipeline, Wrapped: s} }

// Effects wraps a schema refined by side-effecting checks.
func Effects(s *Schema) *Schema { return &Schema{Kind: KindEffects, Wrapped: s} }

// Branded wraps the underlying type of a branded schema.
func Branded(s *Schema) *Schema { return &Schema{Kind: KindBranded, Under: s} }
