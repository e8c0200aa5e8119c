package sorter

import (
	"bytes"
	"cmp"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/aarondl/strmangle"
)

type fieldKey struct {
	typ  reflect.Type
	name string
}

var fieldIndexCache sync.Map // fieldKey -> []int (nil when not found)

// FieldValue returns the value named name out of item. Structs are matched by
// boil/json tag first, then by Go field name (created_at -> CreatedAt); maps
// with string keys are indexed directly. It returns nil when nothing matches.
func FieldValue(item any, name string) any {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()

	case reflect.Struct:
		index := structFieldIndex(v.Type(), name)
		if index == nil {
			return nil
		}
		f, err := v.FieldByIndexErr(index)
		if err != nil || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}

	return nil
}

func structFieldIndex(t reflect.Type, name string) []int {
	key := fieldKey{typ: t, name: name}
	if cached, ok := fieldIndexCache.Load(key); ok {
		return cached.([]int)
	}

	index := lookupFieldIndex(t, name)
	fieldIndexCache.Store(key, index)
	return index
}

func lookupFieldIndex(t reflect.Type, name string) []int {
	fields := reflect.VisibleFields(t)

	for _, f := range fields {
		if !f.IsExported() {
			continue
		}
		for _, tag := range []string{"boil", "json"} {
			if tagName, _, _ := strings.Cut(f.Tag.Get(tag), ","); tagName == name {
				return f.Index
			}
		}
	}

	titled := strmangle.TitleCase(name)
	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && f.Name == titled {
			return f.Index
		}
	}

	bare := strings.ReplaceAll(name, "_", "")
	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && strings.EqualFold(f.Name, bare) {
			return f.Index
		}
	}

	return nil
}

// CompareValues orders two sort keys, returning -1, 0 or +1.
//
// Nullable values (anything implementing driver.Valuer, e.g. null.String) are
// unwrapped first. nil sorts after every other value. Numbers of different
// kinds compare numerically; strings compare byte-wise; mismatched types fall
// back to comparing their fmt representation.
func CompareValues(a, b any) int {
	a, b = normalize(a), normalize(b)

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y)
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return bytes.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case uint64:
		if y, ok := b.(uint64); ok {
			return cmp.Compare(x, y)
		}
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func normalize(v any) any {
	if v == nil {
		return nil
	}

	if valuer, ok := v.(driver.Valuer); ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		dv, err := valuer.Value()
		if err != nil || dv == nil {
			return nil
		}
		v = dv
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}

	return rv.Interface()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
