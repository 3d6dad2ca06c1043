package source

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/serialscope/serialscope/model"
)

// ParseLine turns one text line into an engine event. Values may be
// separated by commas, spaces, or tabs. A line where every field parses
// as a finite number is a sample row. A line where every field looks
// like a channel name is a schema declaration. Anything else (blank
// lines, rows holding a non-finite value, garbled mixes of the two)
// parses to ok=false and is dropped. The name check is strict: a
// burst of noise must never pass for a header, because a header wipes
// all retained history.
func ParseLine(line string) (model.Event, bool) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return model.Event{}, false
	}

	values := make([]float64, 0, len(fields))
	numeric := true
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			numeric = false
			break
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Event{}, false
		}
		values = append(values, v)
	}
	if numeric {
		return model.Event{Values: values}, true
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		f = strings.TrimSuffix(f, ":")
		if !validName(f) {
			return model.Event{}, false
		}
		names[i] = f
	}
	return model.Event{Names: names}, true
}

// validName accepts header fields that start with a letter or underscore
// and contain only printable runes.
func validName(s string) bool {
	for i, r := range s {
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return s != ""
}

// splitFields splits on commas, spaces, and tabs, dropping empty fields
// so "1, 2,  3" and "1 2 3" read the same.
func splitFields(line string) []string {
	return strings.FieldsFunc(strings.TrimSpace(line), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
