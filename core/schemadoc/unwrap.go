package schemadoc

// maxUnwrapDepth bounds wrapper chains so malformed or cyclic input still
// terminates.
const maxUnwrapDepth = 32

var unknownSchema = &Schema{Kind: KindUnknown}

// Unwrap peels transparent wrapper nodes one layer at a time, following the
// Inner, Wrapped, and Under links in that priority order, until a node
// exposes no further wrapper link. A nil node is already terminal and maps
// to the unknown schema.
func Unwrap(s *Schema) *Schema {
	for i := 0; i < maxUnwrapDepth; i++ {
		if s == nil {
			return unknownSchema
		}
		switch {
		case s.Inner != nil:
			s = s.Inner
		case s.Wrapped != nil:
			s = s.Wrapped
		case s.Under != nil:
			s = s.Under
		default:
			return s
		}
	}
	return s
}

// IsOptional reports whether s tolerates absence: any optional or default
// wrapper in its chain. A nullable field still has to be present.
func IsOptional(s *Schema) bool {
	for i := 0; i < maxUnwrapDepth && s != nil; i++ {
		if s.Kind == KindOptional || s.Kind == KindDefault {
			return true
		}
		switch {
		case s.Inner != nil:
			s = s.Inner
		case s.Wrapped != nil:
			s = s.Wrapped
		case s.Under != nil:
			s = s.Under
		default:
			return false
		}
	}
	return false
}
