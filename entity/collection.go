package entity

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CollectionName derives the backing collection name for T from its Go type
// name: the struct name is converted to snake_case and pluralized, so
// *UserProfile maps to "user_profiles". The result seeds every cache key the
// repository issues for the collection, which is why the conversion strips
// anything that is not a letter, digit or underscore.
func CollectionName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return inflection.Plural(toSnake(t.Name()))
}

// toSnake converts s to snake_case using ASCII-aware rules. Runs of upper
// case are kept together (HTTPServer -> http_server) and punctuation that
// could leak out of reflected type names is collapsed to underscores.
func toSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 && !lastUnderscore {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false

		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
