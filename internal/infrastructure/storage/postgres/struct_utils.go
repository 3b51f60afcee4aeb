package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns returns the column names declared by "db" tags on T,
// descending into embedded structs.
//
//	columns := ExtractDBColumns[taxes.Rate]()
//	// ["id", "classification", "rate", "description", "effective_from", "effective_to"]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := metadataFor(reflect.TypeOf(zero))
	return meta.columns()
}

type fieldInfo struct {
	index int
	dbTag string
}

type typeMetadata struct {
	t               reflect.Type
	fields          []fieldInfo
	embeddedIndices []int
}

func (m *typeMetadata) columns() []string {
	var cols []string
	for _, fi := range m.fields {
		cols = append(cols, fi.dbTag)
	}
	for _, idx := range m.embeddedIndices {
		cols = append(cols, metadataFor(m.t.Field(idx).Type).columns()...)
	}
	return cols
}

// typeCache maps reflect.Type to *typeMetadata.
var typeCache sync.Map

func metadataFor(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{t: t}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				meta.embeddedIndices = append(meta.embeddedIndices, i)
				continue
			}
			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.fields = append(meta.fields, fieldInfo{index: i, dbTag: tag})
		}
	}

	typeCache.Store(t, meta)
	return meta
}

// StructToMap converts a struct (or pointer to struct) to a column->value map using "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metadataFor(rv.Type())
	res := make(map[string]any, len(meta.fields))
	for _, fi := range meta.fields {
		res[fi.dbTag] = rv.Field(fi.index).Interface()
	}
	for _, idx := range meta.embeddedIndices {
		for k, val := range StructToMap(rv.Field(idx).Interface()) {
			res[k] = val
		}
	}
	return res
}
