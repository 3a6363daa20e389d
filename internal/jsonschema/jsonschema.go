package jsonschema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// Schema is a minimal JSON Schema representation: enough to describe a
// character record's fields, not a general validation vocabulary.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the element schema of an array.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties holds the value schema of a string-keyed map.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Default value for the field.
	Default any `json:"default,omitempty"`
	// Enum lists the allowed values for the field.
	Enum []any `json:"enum,omitempty"`
}

// Generate builds a schema for T by walking its fields with reflection.
// Pointer fields and fields with omitempty are treated as optional; a
// jsonschema:"required" tag forces a field back into the required list.
func Generate[T any]() *Schema {
	return generate(reflect.TypeFor[T]())
}

func generate(t reflect.Type) *Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: generate(t.Elem())}
	case reflect.Struct:
		return generateStruct(t)
	default:
		return &Schema{Type: "object"}
	}
}

func generateStruct(t reflect.Type) *Schema {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		omitEmpty := false
		if jsonTag != "" {
			if comma := strings.Index(jsonTag, ","); comma != -1 {
				if jsonTag[:comma] != "" {
					name = jsonTag[:comma]
				}
				omitEmpty = strings.Contains(jsonTag[comma:], "omitempty")
			} else {
				name = jsonTag
			}
		}

		fieldSchema := generate(field.Type)
		requiredByTag, err := applyTag(field.Type, field.Tag, fieldSchema)
		if err != nil {
			slog.Error("jsonschema tag ignored", "field", name, "error", err)
		}

		schema.Properties[name] = fieldSchema
		if (field.Type.Kind() != reflect.Ptr && !omitEmpty) || requiredByTag {
			required = append(required, name)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// applyTag parses the jsonschema struct tag and applies it to schema.
// Supported items: description=…, enum=… (repeatable, converted to the
// field's own type), and the bare word required.
func applyTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	raw := tag.Get("jsonschema")
	if raw == "" {
		return false, nil
	}

	requiredByTag := false
	for _, item := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case !hasValue && key == "required":
			requiredByTag = true
		case key == "description":
			schema.Description = value
		case key == "enum":
			converted, err := convertEnumValue(fieldType, value)
			if err != nil {
				return requiredByTag, err
			}
			schema.Enum = append(schema.Enum, converted)
		}
	}
	return requiredByTag, nil
}

func convertEnumValue(fieldType reflect.Type, value string) (any, error) {
	for fieldType.Kind() == reflect.Ptr || fieldType.Kind() == reflect.Slice {
		fieldType = fieldType.Elem()
	}
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as int64: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as float64: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as bool: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type %v", fieldType)
	}
}

// JsonString converts the schema to its JSON representation. Pass true to
// pretty-print with two-space indentation.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(s, "", "  ")
	} else {
		encoded, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(encoded), nil
}

// String returns the compact JSON representation, or an error string if
// marshalling fails, so it is always safe to use in log output.
func (s *Schema) String() string {
	out, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
