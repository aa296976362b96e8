package pipeline

import (
	"cmp"
	"strconv"
	"strings"
)

// Key is a group key of one or two values.
type Key struct {
	Parts [2]string
	Len   int
}

// NewKey builds a key from one or two values.
func NewKey(parts ...string) Key {
	var k Key
	k.Len = copy(k.Parts[:], parts)
	return k
}

// At returns the i-th part of the key.
func (k Key) At(i int) string {
	return k.Parts[i]
}

func (k Key) String() string {
	if k.Len == 1 {
		return k.Parts[0]
	}
	return "(" + strings.Join(k.Parts[:k.Len], ", ") + ")"
}

// compareKeys orders keys part by part.
func compareKeys(a, b Key) int {
	for i := 0; i < a.Len && i < b.Len; i++ {
		if c := compareValues(a.Parts[i], b.Parts[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len, b.Len)
}

// compareValues orders integers numerically, so years sort as numbers, and
// everything else lexically. Integers sort before text. Distinct spellings of
// the same integer, such as "1" and "01", fall back to lexical order.
func compareValues(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		if c := cmp.Compare(ai, bi); c != 0 {
			return c
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
