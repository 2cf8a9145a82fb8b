package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// fenceOpen matches the opening line of a Markdown code fence, optionally
// tagged json.
var fenceOpen = regexp.MustCompile("```(?:json|JSON)?[ \\t]*\\r?\\n?")

// Extract returns the JSON object embedded in model output. Output that is a
// single JSON object is returned as is. Otherwise the first complete object
// after an opening code fence wins, then the first complete object anywhere
// in the text. Text after the object, including stray braces or a closing
// fence, is ignored.
func Extract(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrNoJSON
	}

	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		return trimmed, nil
	}

	if loc := fenceOpen.FindStringIndex(trimmed); loc != nil {
		if obj, ok := firstObject(trimmed[loc[1]:]); ok {
			return obj, nil
		}
	}
	if obj, ok := firstObject(trimmed); ok {
		return obj, nil
	}

	start := strings.Index(trimmed, "{")
	if start < 0 || !strings.Contains(trimmed[start:], "}") {
		return "", ErrNoJSON
	}
	return "", ErrMalformedJSON
}

// firstObject decodes the first complete JSON object in text, trying each
// '{' in order. Whatever follows the object is not read.
func firstObject(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		next := strings.IndexByte(text[i:], '{')
		if next < 0 {
			return "", false
		}
		i += next

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err == nil {
			return string(raw), true
		}
	}
	return "", false
}

// Validate checks a JSON payload against the schema. It reports the first
// problem found, walking fields in declaration order.
func (s *Schema) Validate(payload string) error {
	if !gjson.Valid(payload) {
		return ErrMalformedJSON
	}

	root := gjson.Parse(payload)
	if !root.IsObject() {
		return mismatch("", "top-level value must be an object")
	}
	return validateObject(root, s.Fields, "")
}

func validateObject(obj gjson.Result, fields []Field, path string) error {
	values := obj.Map()
	for _, f := range fields {
		if err := validateValue(values[f.Name], f, join(path, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(v gjson.Result, f Field, path string) error {
	if !v.Exists() || v.Type == gjson.Null {
		if f.Required {
			return mismatch(path, "is required")
		}
		return nil
	}

	switch f.Type {
	case TypeString:
		if v.Type != gjson.String {
			return mismatch(path, "must be a string")
		}
		if f.Required && strings.TrimSpace(v.Str) == "" {
			return mismatch(path, "must not be empty")
		}
	case TypeInteger:
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			return mismatch(path, "must be an integer")
		}
	case TypeNumber:
		if v.Type != gjson.Number {
			return mismatch(path, "must be a number")
		}
	case TypeBoolean:
		if v.Type != gjson.True && v.Type != gjson.False {
			return mismatch(path, "must be a boolean")
		}
	case TypeObject:
		if !v.IsObject() {
			return mismatch(path, "must be an object")
		}
		return validateObject(v, f.Fields, path)
	case TypeArray:
		if !v.IsArray() {
			return mismatch(path, "must be an array")
		}
		if f.Items == nil {
			return nil
		}
		for i, elem := range v.Array() {
			if err := validateValue(elem, *f.Items, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// Decode extracts the JSON object from text, validates it against the
// schema and unmarshals it into out.
func (s *Schema) Decode(text string, out any) error {
	payload, err := Extract(text)
	if err != nil {
		return err
	}
	if err := s.Validate(payload); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
