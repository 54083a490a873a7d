package quote

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Parser selects which FieldSource backend derives quotes from raw payloads.
type Parser string

const (
	// ParserScan is the substring scanner, the default backend.
	ParserScan Parser = "scan"
	// ParserJSON is the structured JSON backend.
	ParserJSON Parser = "json"
)

// FieldSource pulls a named numeric field out of one raw quote payload.
// A return of 0 is ambiguous between "absent" and "legitimately zero";
// callers key validity off fields that cannot legitimately be zero.
type FieldSource interface {
	Get(key string) float64
	Name() string
}

// NewFieldSource returns the backend for the given parser, wrapping one
// payload. Unknown parsers fall back to the scanner.
func NewFieldSource(parser Parser, payload string) FieldSource {
	if parser == ParserJSON {
		return &JSONSource{payload: payload}
	}
	return &ScanSource{payload: payload}
}

// ScanSource locates fields by scanning for the quoted key as a literal
// substring. It does not validate that the match sits in a genuine
// key-value position; that looseness is part of its contract and the
// reason the JSONSource backend exists.
type ScanSource struct {
	payload string
}

func NewScanSource(payload string) *ScanSource { return &ScanSource{payload: payload} }

func (s *ScanSource) Name() string { return "scan" }

// Get finds the first occurrence of `"key"` in the payload, skips any run
// of space, ':' and '"' characters after it, and parses the longest
// decimal-number prefix at that position. Absent key or empty parse
// yields 0.
func (s *ScanSource) Get(key string) float64 {
	quoted := `"` + key + `"`
	i := strings.Index(s.payload, quoted)
	if i < 0 {
		return 0
	}
	rest := s.payload[i+len(quoted):]
	j := 0
	for j < len(rest) && (rest[j] == ' ' || rest[j] == ':' || rest[j] == '"') {
		j++
	}
	return leadingFloat(rest[j:])
}

// JSONSource resolves fields with a real JSON path lookup. Behavior for
// well-formed payloads matches ScanSource; missing fields still yield 0.
type JSONSource struct {
	payload string
}

func NewJSONSource(payload string) *JSONSource { return &JSONSource{payload: payload} }

func (s *JSONSource) Name() string { return "json" }

func (s *JSONSource) Get(key string) float64 {
	return gjson.Get(s.payload, key).Float()
}

// leadingFloat parses the longest valid decimal-number prefix of s:
// optional sign, digits, optional fraction, optional exponent. An empty
// parse yields 0.
func leadingFloat(s string) float64 {
	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := false
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
		digits = true
	}
	if n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}
		expStart := m
		for m < len(s) && s[m] >= '0' && s[m] <= '9' {
			m++
		}
		if m > expStart {
			n = m
		}
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0
	}
	return v
}
