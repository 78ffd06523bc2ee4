package signed

import (
	"errors"
	"strconv"
)

// String returns the decimal form of x, e.g. "-123".
func (x Int64) String() string {
	negative, mag := x.parts()
	s := strconv.FormatUint(mag, 10)
	if negative {
		return "-" + s
	}
	return s
}

// Parse reads a decimal integer with an optional leading '+' or '-'.
// Magnitudes above MaxMagnitude return ErrConversionOverflow; anything
// else that is not a decimal integer returns a *ParseError.
// "-0" parses to zero.
func Parse(s string) (Int64, error) {
	digits := s
	negative := false
	if len(s) > 0 {
		switch s[0] {
		case '+':
			digits = s[1:]
		case '-':
			negative = true
			digits = s[1:]
		}
	}
	if digits == "" {
		return Int64{}, &ParseError{Input: s, Err: strconv.ErrSyntax}
	}

	u, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Int64{}, newError(CodeConversionOverflow, opParse)
		}
		return Int64{}, &ParseError{Input: s, Err: strconv.ErrSyntax}
	}

	x, err := fromUint64(u, opParse)
	if err != nil {
		return Int64{}, err
	}
	if negative {
		return x.Neg(), nil
	}
	return x, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or for constants.
func MustParse(s string) Int64 {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// MarshalText implements encoding.TextMarshaler.
func (x Int64) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int64) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a JSON number.
func (x Int64) MarshalJSON() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string holding a decimal
// integer. null leaves x unchanged.
func (x *Int64) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
