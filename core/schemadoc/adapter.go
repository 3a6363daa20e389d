package schemadoc

import (
	"fmt"
	"sort"

	"github.com/darielli/evochar/internal/jsonschema"
)

// FromJSONSchema translates a reflection-generated JSON schema into the
// neutral introspection model, so Go types can drive [Describe] without the
// introspector knowing anything about JSON Schema.
//
// JSON schema properties carry no declaration order, so object fields are
// ordered required-first (in required-list order) followed by the remaining
// keys alphabetically. Fields outside the required list are wrapped as
// optional.
func FromJSONSchema(js *jsonschema.Schema) *Schema {
	if js == nil {
		return Unknown()
	}

	var s *Schema
	switch {
	case len(js.Enum) > 0:
		values := make([]string, len(js.Enum))
		for i, v := range js.Enum {
			values[i] = fmt.Sprintf("%v", v)
		}
		s = Enum(values...)
	case js.Type == "string":
		s = String()
	case js.Type == "number" || js.Type == "integer":
		s = Number()
	case js.Type == "boolean":
		s = Boolean()
	case js.Type == "null":
		s = Null()
	case js.Type == "array":
		s = ArrayOf(FromJSONSchema(js.Items))
	case js.Type == "object" && len(js.Properties) > 0:
		s = Object(objectFields(js)...)
	case js.Type == "object":
		if value, ok := js.AdditionalProperties.(*jsonschema.Schema); ok {
			s = RecordOf(FromJSONSchema(value))
		} else {
			s = Object()
		}
	default:
		s = Unknown()
	}

	if js.Description != "" {
		s.Description = js.Description
	}
	return s
}

func objectFields(js *jsonschema.Schema) []Field {
	requiredSet := make(map[string]bool, len(js.Required))
	for _, name := range js.Required {
		requiredSet[name] = true
	}

	ordered := make([]string, 0, len(js.Properties))
	for _, name := range js.Required {
		if _, ok := js.Properties[name]; ok {
			ordered = append(ordered, name)
		}
	}
	var rest []string
	for name := range js.Properties {
		if !requiredSet[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	fields := make([]Field, 0, len(ordered))
	for _, name := range ordered {
		converted := FromJSONSchema(js.Properties[name])
		if !requiredSet[name] {
			converted = Optional(converted)
		}
		fields = append(fields, F(name, converted))
	}
	return fields
}
