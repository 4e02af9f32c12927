package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// multiMapAttrs turns http.Header, metadata.MD or url.Values shaped data
// into sorted attributes under prefix. A nil allow list keeps every key.
func multiMapAttrs(prefix string, m map[string][]string, allow map[string]bool) []slog.Attr {
	keys := make([]string, 0, len(m))
	for k, vs := range m {
		if len(vs) == 0 {
			continue
		}
		if allow != nil && !allow[strings.ToLower(k)] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		name := k
		if allow != nil {
			name = strings.ToLower(k)
		}
		attrs = append(attrs, slog.String(prefix+"."+name, maskValue(k, strings.Join(m[k], ", "))))
	}
	return attrs
}

// jsonAttrs flattens a JSON document under prefix. Input that is not JSON
// is kept as a single string attribute.
func jsonAttrs(prefix string, b []byte) []slog.Attr {
	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return []slog.Attr{slog.String(prefix, string(b))}
	}
	attrs := make([]slog.Attr, 0, 8)
	flattenJSON(prefix, data, &attrs)
	return attrs
}

// flattenJSON emits one attribute per scalar leaf. Arrays are sampled: only
// the first and last element are kept, plus the length. A sensitive key
// hides its whole subtree.
func flattenJSON(prefix string, v any, dst *[]slog.Attr) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if isSensitive(k) {
				*dst = append(*dst, slog.String(prefix+"."+k, redacted))
				continue
			}
			flattenJSON(prefix+"."+k, t[k], dst)
		}
	case []any:
		n := len(t)
		if n == 0 {
			return
		}
		*dst = append(*dst, slog.Int(prefix+".length", n))
		flattenJSON(prefix+".0", t[0], dst)
		if n > 1 {
			flattenJSON(prefix+"."+strconv.Itoa(n-1), t[n-1], dst)
		}
	case string:
		*dst = append(*dst, slog.String(prefix, t))
	case float64:
		*dst = append(*dst, slog.Float64(prefix, t))
	case bool:
		*dst = append(*dst, slog.Bool(prefix, t))
	case nil:
	default:
		*dst = append(*dst, slog.String(prefix, fmt.Sprintf("%v", t)))
	}
}
