package jsonstate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/verityhq/verity/packages/poll"
	"github.com/verityhq/verity/packages/state"
)

// Document provides path-based state access over a JSON source.
type Document struct {
	src state.Accessor[[]byte]
}

// NewDocument wraps a fixed JSON payload.
func NewDocument(data []byte) *Document {
	return &Document{src: state.Of(data)}
}

// Live wraps a JSON source that is re-read on every access, for payloads
// that change between poll attempts.
func Live(src state.Accessor[[]byte]) *Document {
	return &Document{src: src}
}

var bracketPattern = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot
// notation, e.g. "items[0].tags[1]" -> "items.0.tags.1".
func convertBracketNotation(path string) string {
	result := bracketPattern.ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(result, ".")
}

// Path returns an accessor for the value at a gjson path. A missing path
// yields nil rather than an error, so absence itself can be verified.
func (d *Document) Path(path string) state.Accessor[any] {
	converted := convertBracketNotation(path)
	return state.FromFunc(func() (any, error) {
		data, err := d.src.Get()
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("document is not valid JSON")
		}
		result := gjson.GetBytes(data, converted)
		if !result.Exists() {
			return nil, nil
		}
		return result.Value(), nil
	})
}

// Root returns an accessor for the whole decoded document.
func (d *Document) Root() state.Accessor[any] {
	return state.FromFunc(func() (any, error) {
		data, err := d.src.Get()
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("document is not valid JSON")
		}
		return gjson.ParseBytes(data).Value(), nil
	})
}

// MatchesSchema builds a condition that validates the current value at src
// against a JSON Schema document. Violations are reported through the
// condition's error so they end up in the record's actual-value diagnostics.
func MatchesSchema(src state.Accessor[any], schema []byte) poll.Condition {
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	return func() (bool, any, error) {
		v, err := src.Get()
		if err != nil {
			return false, nil, err
		}

		actualJSON, err := json.Marshal(v)
		if err != nil {
			return false, v, fmt.Errorf("failed to marshal actual value: %w", err)
		}

		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(actualJSON))
		if err != nil {
			return false, v, fmt.Errorf("schema validation error: %w", err)
		}
		if result.Valid() {
			return true, v, nil
		}

		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return false, v, fmt.Errorf("schema validation failed: %s", strings.Join(violations, "; "))
	}
}
