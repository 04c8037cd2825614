package utils

import "github.com/goccy/go-json"

func ToJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func ToIndentedJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func FromJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// IsJSON reports whether data holds exactly one well-formed JSON value.
func IsJSON(data []byte) bool {
	return len(data) > 0 && json.Valid(data)
}
