package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// KeySerializer builds a cache key from a collection name, an operation
// qualifier and any further qualifiers (page, limit, id, ...). Keys must be
// stable across calls and always start with collection + KeySeparator, since
// invalidation works by collection prefix.
type KeySerializer interface {
	SerializeKey(collection, qualifier string, args ...any) string
}

// defaultKeySerializer renders qualifiers deterministically. Basic types use
// their string form; pointers are dereferenced, slices and maps are expanded
// (maps with sorted keys), and anything else falls back to JSON.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer returns the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) SerializeKey(collection, qualifier string, args ...any) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, collection, qualifier)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ","))

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv)

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)

	default:
		return s.jsonFallback(v)
	}
}

// serializeMap renders map entries in sorted key order so the same map always
// yields the same key segment.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, fmt.Sprintf("%s=%s",
			s.serializeValue(iter.Key().Interface()),
			s.serializeValue(iter.Value().Interface())))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("{%s}", strings.Join(pairs, ","))
}

func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", data)
}
