package models

// Field is the result of a single per-field selector lookup. A selector that
// matched nothing, or matched an element with blank text, yields an absent
// Field; the surrounding record keeps its empty default and extraction of the
// remaining fields carries on.
type Field struct {
	Value   string
	Present bool
}

// Present wraps a non-empty value. An empty value still counts as absent so
// that blank element text never populates a record.
func Present(value string) Field {
	if value == "" {
		return Absent()
	}
	return Field{Value: value, Present: true}
}

// Absent is the zero lookup result.
func Absent() Field {
	return Field{}
}

// Or returns the field's value when present, otherwise the fallback.
func (f Field) Or(fallback string) string {
	if f.Present {
		return f.Value
	}
	return fallback
}
