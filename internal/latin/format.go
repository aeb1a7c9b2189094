package latin

import "fmt"

// Textual form of a square: n² base-16 digits in row-major order, one
// digit per cell. Partial squares write '.' for an unknown cell.

// Unknown is the placeholder digit for an empty cell of a partial
// square.
const Unknown = '.'

// InvalidLengthError reports an input whose length is not a perfect
// square (or does not match an expected length).
type InvalidLengthError struct {
	Len int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length %d, expected a square number", e.Len)
}

// InvalidDigitError reports a character that is not a digit of the
// square's base, or encodes a symbol out of range.
type InvalidDigitError struct {
	Index int
	Char  byte
}

func (e InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid digit at index %d: %q", e.Index, e.Char)
}

// NotLatinError reports a well-formed digit string whose grid violates
// the Latin property.
type NotLatinError struct{}

func (NotLatinError) Error() string {
	return "the latin square property is not met"
}

func isqrt(n int) (int, bool) {
	for i := 0; ; i++ {
		if i*i == n {
			return i, true
		}
		if i*i > n {
			return 0, false
		}
	}
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

func digitChar(v int) byte {
	if v < 10 {
		return byte('0' + v)
	}
	return byte('a' + v - 10)
}

// ParseSquare decodes the canonical digit string of a Latin square.
func ParseSquare(text string) (Square, error) {
	n, ok := isqrt(len(text))
	if !ok || n == 0 || n > MaxOrder {
		return Square{}, InvalidLengthError{Len: len(text)}
	}
	cells := make([]uint8, len(text))
	for i := 0; i < len(text); i++ {
		v, ok := digitValue(text[i])
		if !ok || v >= n {
			return Square{}, InvalidDigitError{Index: i, Char: text[i]}
		}
		cells[i] = uint8(v)
	}
	sq, ok := NewSquare(n, cells)
	if !ok {
		return Square{}, NotLatinError{}
	}
	return sq, nil
}

// String renders the canonical digit string.
func (s Square) String() string {
	out := make([]byte, len(s.cells))
	for i, c := range s.cells {
		out[i] = digitChar(int(c))
	}
	return string(out)
}

// ParsePartial decodes a partial square, with '.' marking empty cells.
func ParsePartial(text string) (Partial, error) {
	n, ok := isqrt(len(text))
	if !ok || n == 0 || n > MaxOrder {
		return Partial{}, InvalidLengthError{Len: len(text)}
	}
	p := NewPartial(n)
	for i := 0; i < len(text); i++ {
		if text[i] == Unknown {
			continue
		}
		v, ok := digitValue(text[i])
		if !ok || v >= n {
			return Partial{}, InvalidDigitError{Index: i, Char: text[i]}
		}
		p.cells[i] = int8(v)
	}
	if !p.isValid() {
		return Partial{}, NotLatinError{}
	}
	return p, nil
}

// String renders the partial square with '.' for empty cells.
func (p Partial) String() string {
	out := make([]byte, len(p.cells))
	for i, c := range p.cells {
		if c < 0 {
			out[i] = Unknown
		} else {
			out[i] = digitChar(int(c))
		}
	}
	return string(out)
}

// Pretty renders a square as an ASCII grid with box-drawn separators.
func (s Square) Pretty() string {
	return prettyGrid(s.n, func(i, j int) (int, bool) { return s.Get(i, j), true })
}

// Pretty renders a partial square, leaving empty cells blank.
func (p Partial) Pretty() string {
	return prettyGrid(p.n, p.Get)
}

func prettyGrid(n int, get func(i, j int) (int, bool)) string {
	var out []byte
	rule := func() {
		out = append(out, '+')
		for j := 0; j < n; j++ {
			out = append(out, '-', '-', '-', '+')
		}
		out = append(out, '\n')
	}
	rule()
	for i := 0; i < n; i++ {
		out = append(out, '|')
		for j := 0; j < n; j++ {
			if v, ok := get(i, j); ok {
				out = append(out, ' ', digitChar(v), ' ', '|')
			} else {
				out = append(out, ' ', ' ', ' ', '|')
			}
		}
		out = append(out, '\n')
		rule()
	}
	return string(out)
}
