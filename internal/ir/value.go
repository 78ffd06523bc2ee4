package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface for values that may appear in canonical
// records. Only IRNull, IRString, IRInt, IRBool, IRArray and IRObject
// implement it. There is no float type.
type IRValue interface {
	irValue()
}

// IRNull is an explicit null. Canonical encoding rejects it.
type IRNull struct{}

func (IRNull) irValue() {}

// IRString is a string value.
type IRString string

func (IRString) irValue() {}

// IRInt is an integer value, always int64.
type IRInt int64

func (IRInt) irValue() {}

// IRBool is a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray is an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject maps string keys to values.
// Use SortedKeys for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// Strings builds an IRArray of IRString.
func Strings(ss []string) IRArray {
	arr := make(IRArray, len(ss))
	for i, s := range ss {
		arr[i] = IRString(s)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's string ordering is UTF-8 byte order, which differs for
// characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			return int(a16[i]) - int(b16[i])
		}
	}
	return len(a16) - len(b16)
}
