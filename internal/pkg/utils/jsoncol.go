package utils

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// ToJSONColumn encodes v for a JSON column. Nil values map to SQL NULL so that
// absent optional fields survive a round trip as absent.
func ToJSONColumn(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return nil
	}
	return datatypes.JSON(data)
}

// FromJSONColumn decodes a JSON column into T. NULL and undecodable values
// yield the zero value of T.
func FromJSONColumn[T any](col datatypes.JSON) T {
	var out T
	if len(col) == 0 || string(col) == "null" {
		return out
	}
	if err := json.Unmarshal(col, &out); err != nil {
		var zero T
		return zero
	}
	return out
}

// StringsFromColumn reads a string list column, falling back to
// comma-separated text written by older clients.
func StringsFromColumn(col datatypes.JSON) []string {
	if len(col) == 0 || string(col) == "null" {
		return nil
	}
	var out []string
	if err := json.Unmarshal(col, &out); err != nil {
		return strings.Split(string(col), ",")
	}
	return out
}
