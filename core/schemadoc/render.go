package schemadoc

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldDescriptor describes one schema field for prompt rendering.
type FieldDescriptor struct {
	Path        string // dotted/bracketed location, e.g. "style.all", "topics[]"
	Type        string // compact type signature, see TypeString
	Optional    bool
	Description string
}

// TypeString renders the unwrapped node's kind as a compact type signature.
// Every nested reference goes through Unwrap defensively, and anything
// unrecognized renders as "unknown" rather than failing.
func TypeString(s *Schema) string {
	u := Unwrap(s)
	switch u.Kind {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindBigInt:
		return "bigint"
	case KindLiteral:
		return literalString(u.Literal)
	case KindEnum:
		return "enum<" + strings.Join(u.Values, " | ") + ">"
	case KindNativeEnum:
		return "enum"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindAny:
		return "any"
	case KindArray:
		return "array<" + TypeString(u.Elem) + ">"
	case KindRecord:
		return "record<string, " + TypeString(u.Elem) + ">"
	case KindUnion, KindDiscriminatedUnion:
		parts := make([]string, len(u.Options))
		for i, option := range u.Options {
			parts[i] = TypeString(option)
		}
		return strings.Join(parts, " | ")
	case KindObject:
		return "object"
	case KindTuple:
		parts := make([]string, len(u.Options))
		for i, item := range u.Options {
			parts[i] = TypeString(item)
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	default:
		return "unknown"
	}
}

// literalString renders a literal value as data: strings quoted and escaped,
// everything else in its natural notation.
func literalString(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DescriptionOf returns the node's own description, falling back to the
// unwrapped node's. Absence yields the empty string.
func DescriptionOf(s *Schema) string {
	if s == nil {
		return ""
	}
	if s.Description != "" {
		return s.Description
	}
	return Unwrap(s).Description
}

// CollectFields flattens an object schema into one descriptor per declared
// field, in declaration order. A nested object contributes both its own
// summary row and rows for its children; arrays of objects recurse under a
// "[]" path suffix and records of objects under "{value}". A non-object
// schema yields no descriptors.
func CollectFields(s *Schema, prefix string) []FieldDescriptor {
	u := Unwrap(s)
	if u.Kind != KindObject {
		return nil
	}

	var out []FieldDescriptor
	for _, field := range u.Fields {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		out = append(out, FieldDescriptor{
			Path:        path,
			Type:        TypeString(field.Schema),
			Optional:    IsOptional(field.Schema),
			Description: DescriptionOf(field.Schema),
		})

		switch fu := Unwrap(field.Schema); fu.Kind {
		case KindObject:
			out = append(out, CollectFields(fu, path)...)
		case KindArray:
			if Unwrap(fu.Elem).Kind == KindObject {
				out = append(out, CollectFields(fu.Elem, path+"[]")...)
			}
		case KindRecord:
			if Unwrap(fu.Elem).Kind == KindObject {
				out = append(out, CollectFields(fu.Elem, path+"{value}")...)
			}
		}
	}
	return out
}

// Describe renders the schema as the field listing embedded in prompts: a
// header line followed by one line per field descriptor in traversal order.
func Describe(s *Schema) string {
	var b strings.Builder
	b.WriteString("Schema:")
	if desc := DescriptionOf(s); desc != "" {
		b.WriteString(" " + desc)
	}
	for _, fd := range CollectFields(s, "") {
		requirement := "required"
		if fd.Optional {
			requirement = "optional"
		}
		b.WriteString("\n- " + fd.Path + " (" + fd.Type + ", " + requirement + ")")
		if fd.Description != "" {
			b.WriteString(" — " + fd.Description)
		}
	}
	return b.String()
}
