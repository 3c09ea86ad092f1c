package services

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// StripCodeFences returns the body of the first fenced block, or the trimmed input when there
// is none.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ExtractJSONObject returns the span from the first '{' to the last '}', or "".
func ExtractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// Parsed is the result of decoding generator output. Exactly one of Value or RawText is set.
type Parsed[T any] struct {
	Value   *T
	RawText string
}

func (p Parsed[T]) OK() bool { return p.Value != nil }

// MarshalJSON renders the value, or {"rawText": ...} when decoding failed.
func (p Parsed[T]) MarshalJSON() ([]byte, error) {
	if p.Value != nil {
		return json.Marshal(p.Value)
	}
	return json.Marshal(map[string]string{"rawText": p.RawText})
}

// ParseGeneratorJSON strips a code fence and unmarshals into T. Anything that is not a JSON
// object falls back to RawText.
func ParseGeneratorJSON[T any](raw string) Parsed[T] {
	body := StripCodeFences(raw)
	if !strings.HasPrefix(body, "{") {
		return Parsed[T]{RawText: raw}
	}
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return Parsed[T]{RawText: raw}
	}
	return Parsed[T]{Value: &v}
}

// LenientArray decodes raw as a JSON array one element at a time. Anything that is not an array
// yields an empty slice; null elements and elements that do not decode into T are dropped.
func LenientArray[T any](raw json.RawMessage) []T {
	out := []T{}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return out
	}
	for _, e := range elems {
		if isJSONNull(e) {
			continue
		}
		var v T
		if err := json.Unmarshal(e, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// LenientFloat accepts a JSON number or a string holding one.
func LenientFloat(raw json.RawMessage) (float64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// LenientString returns raw as a string, or "" when it is not a JSON string.
func LenientString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
