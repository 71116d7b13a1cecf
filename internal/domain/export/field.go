package export

import "encoding/json"

// FieldKind classifies the shape of an upstream document field.
type FieldKind int

const (
	// FieldAbsent covers nil, missing keys, and any shape that is neither a
	// scalar nor an object (arrays, for instance).
	FieldAbsent FieldKind = iota
	FieldScalar
	FieldObject
)

// Field is the tagged union over the shapes a related entity can take in an
// Unleashed response: a nested object, a bare scalar, or nothing at all.
// Mappers go through Field instead of repeating type switches per resource.
type Field struct {
	Kind   FieldKind
	Scalar any
	Object map[string]any
}

// FieldOf classifies a decoded JSON value.
func FieldOf(v any) Field {
	switch t := v.(type) {
	case map[string]any:
		return Field{Kind: FieldObject, Object: t}
	case string, bool, float64, int, int64, json.Number:
		return Field{Kind: FieldScalar, Scalar: t}
	default:
		return Field{Kind: FieldAbsent}
	}
}

// Sub resolves the field against a named sub-field: an object yields its
// sub-field, a scalar yields itself, anything else yields nil.
func (f Field) Sub(key string) any {
	switch f.Kind {
	case FieldObject:
		return f.Object[key]
	case FieldScalar:
		return f.Scalar
	default:
		return nil
	}
}

// Relation extracts item[field] flattened through Sub(subKey). This is the
// single flattening rule shared by all resource mappers: upstream may send a
// related entity either as an object with a name/code sub-field or as the
// bare value.
func Relation(item map[string]any, field, subKey string) any {
	return FieldOf(item[field]).Sub(subKey)
}

// Items returns the object entries of the document's top-level "Items"
// collection. A missing or malformed collection yields no items rather than
// an error; non-object entries are skipped.
func Items(doc map[string]any) []map[string]any {
	raw, _ := doc["Items"].([]any)
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}

// Objects returns the object entries of a nested collection field on an item,
// e.g. the SalesOrderLines of a sales order.
func Objects(item map[string]any, field string) []map[string]any {
	raw, _ := item[field].([]any)
	objs := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if obj, ok := entry.(map[string]any); ok {
			objs = append(objs, obj)
		}
	}
	return objs
}
