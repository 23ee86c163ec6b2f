package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TrimUTF8BOM skips UTF-8 BOM if present
func TrimUTF8BOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// IntField converts a raw JSON value to int64.
// Whole floats (3.0) are accepted, fractions and non-numbers are not.
// ok is false when the field is missing.
func IntField(raw json.RawMessage) (value int64, ok bool, err error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, false, nil
	}

	n := json.Number(s)
	if i, err := n.Int64(); err == nil {
		return i, true, nil
	}

	f, err := n.Float64()
	if err != nil {
		return 0, true, fmt.Errorf("not a number: %s", s)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, true, fmt.Errorf("number %s is not an integer", s)
	}
	return int64(f), true, nil
}

// WordCount counts space-delimited words of a mnemonic
func WordCount(mnemonic string) int {
	return len(strings.Fields(mnemonic))
}
