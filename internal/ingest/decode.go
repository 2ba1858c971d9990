// Package ingest maps the loosely typed JSON snapshots produced by the
// spreadsheet scrapers onto strict domain types. Each source has one mapper
// with a fixed priority order of alternate field names; nothing past this
// package ever sees raw JSON.
//
// Shape problems (an object where an array was expected, a string where an
// object was expected) degrade to empty values and a warning. Bytes that are
// not JSON at all are domain.ErrMalformedSource.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dimchansky/utfbom"
	"github.com/dom/alliance-dashboard/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// ingestLog is built per call so it follows log.Logger as configured at startup.
func ingestLog() *zerolog.Logger {
	l := log.With().Str("module", "ingest").Logger()
	return &l
}

// decode strips an optional UTF BOM (Sheets CSV->JSON exports often carry
// one) and decodes into untyped values. An empty document decodes to nil.
func decode(source string, data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var v interface{}
	if err := jsonAPI.NewDecoder(utfbom.SkipOnly(bytes.NewReader(data))).Decode(&v); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrapf(domain.ErrMalformedSource, "%s: %v", source, err)
	}
	return v, nil
}

func asArray(source string, v interface{}) []interface{} {
	switch arr := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return arr
	default:
		ingestLog().Warn().Str("source", source).Str("got", fmt.Sprintf("%T", v)).
			Msg("expected a JSON array, treating source as empty")
		return nil
	}
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// sortedKeys gives map-shaped sources a deterministic iteration order.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pick returns the first present, non-empty value among keys.
func pick(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

func pickString(m map[string]interface{}, keys ...string) string {
	return toString(pick(m, keys...))
}

func pickObject(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, k := range keys {
		if obj, ok := asObject(m[k]); ok {
			return obj
		}
	}
	return nil
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return ""
	}
}

// toInt64 accepts JSON numbers and numeric strings as typed in a sheet
// ("1 234 567", "1,234,567"). Like parseInt, parsing stops at the first
// character that is not a digit, so "12.5" is 12. Anything else is 0.
func toInt64(v interface{}) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return floatToInt64(f)
		}
		return parseLooseInt(x.String())
	case float64:
		return floatToInt64(x)
	case string:
		return parseLooseInt(x)
	case fmt.Stringer:
		return parseLooseInt(x.String())
	default:
		return 0
	}
}

func toInt(v interface{}) int {
	n := toInt64(v)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// floatToInt64 truncates f. Values outside the int64 range are garbage cells
// and read as 0, like any other unparsable value.
func floatToInt64(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func parseLooseInt(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()

	end := 0
	if end < len(cleaned) && (cleaned[0] == '-' || cleaned[0] == '+') {
		end++
	}
	start := end
	for end < len(cleaned) && cleaned[end] >= '0' && cleaned[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(cleaned[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
