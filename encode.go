package webform

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// FieldSource is the input to [EncodeURLEncoded]. It is a sealed interface
// with exactly two implementations: [Fields], whose entries are already text
// and are encoded in insertion order, and [StructuredMap], whose values are
// rendered to text and encoded in sorted key order. Implementations yield
// their entries as (key, value-as-text) pairs; the encoder needs nothing
// else from them.
type FieldSource interface {
	fields(yield func(key, value string) bool)
}

// StructuredMap adapts a map of arbitrary scalar values for encoding. Keys
// are visited in sorted order so the output is deterministic. Values must be
// strings, booleans, integers, unsigned integers or floats; any other value
// panics, mirroring the strictness of an explicit scalar grammar.
type StructuredMap map[string]interface{}

func (m StructuredMap) fields(yield func(key, value string) bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !yield(k, scalarString(reflect.ValueOf(m[k]))) {
			return
		}
	}
}

// EncodeURLEncoded serialises src to urlencoded text, joining entries with
// sep (conventionally '&', with ';' accepted by the decoder for
// compatibility). Keys and values are percent-encoded with [Escape].
func EncodeURLEncoded(src FieldSource, sep byte) string {
	var b strings.Builder
	src.fields(func(key, value string) bool {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(Escape(key))
		b.WriteByte('=')
		b.WriteString(Escape(value))
		return true
	})
	return b.String()
}

func scalarString(v reflect.Value) string {
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !v.IsValid() {
		panic("webform: cannot encode nil value")
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		panic("webform: unsupported value type: " + v.Type().String())
	}
}
