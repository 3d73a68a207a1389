package shell

import (
	"fmt"
	"reflect"
	"strings"
)

// EnvMap is a loosely-typed environment or parameter set. Values may be
// scalars or slices; digesting flattens everything to strings.
type EnvMap map[string]any

// DigestEnv flattens an EnvMap into process-environment form. Slice values
// are joined into a single shell-quoted word list so they survive a round
// trip through `sh -c`.
func DigestEnv(env EnvMap) map[string]string {
	flat := make(map[string]string, len(env))
	for key, value := range env {
		if items, ok := iterable(value); ok {
			quoted := make([]string, len(items))
			for i, item := range items {
				quoted[i] = Quote(item)
			}
			flat[key] = strings.Join(quoted, " ")
			continue
		}
		flat[key] = stringify(value)
	}
	return flat
}

// DigestParams flattens an EnvMap for command interpolation. Slice values
// are space-joined without quoting.
func DigestParams(params EnvMap) map[string]string {
	flat := make(map[string]string, len(params))
	for key, value := range params {
		if items, ok := iterable(value); ok {
			flat[key] = strings.Join(items, " ")
			continue
		}
		flat[key] = stringify(value)
	}
	return flat
}

// Quote wraps a string in single quotes with POSIX-safe escaping, so it is
// treated as one word by the shell.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`!*?[](){}<>|&;~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// iterable flattens slice and array values to strings. Strings and byte
// slices count as scalars.
func iterable(value any) ([]string, bool) {
	if value == nil {
		return nil, false
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = stringify(rv.Index(i).Interface())
	}
	return items, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
