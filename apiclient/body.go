package apiclient

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/octabyte/quizmaster-client/utils"
)

var emptyObject = Body("{}")

// Body is a JSON response document. It is never empty: a missing or unparseable payload is
// represented as the empty object.
type Body []byte

func parseBody(raw []byte) Body {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !utils.IsJSON(trimmed) {
		return emptyObject
	}
	out := make(Body, len(trimmed))
	copy(out, trimmed)
	return out
}

func (b Body) Decode(v any) error {
	return json.Unmarshal(b, v)
}

// Get reads a value with a gjson path, e.g. "access_token" or "items.0.name".
func (b Body) Get(path string) gjson.Result {
	return gjson.GetBytes(b, path)
}

// Map returns the fields of an object body. Bodies that are not objects yield an empty map.
func (b Body) Map() map[string]any {
	out := map[string]any{}
	if !gjson.ParseBytes(b).IsObject() {
		return out
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}

func (b Body) String() string {
	return string(b)
}
