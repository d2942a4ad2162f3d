package number

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseComplex reads a complex scalar from s. It accepts the forms
// strconv understands ("3+4i", "2i", "-1.5") with or without the
// surrounding parentheses strconv emits.
func ParseComplex(s string) (complex128, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	c, err := strconv.ParseComplex(t, 128)
	if err != nil {
		return 0, fmt.Errorf("number: cannot parse %q as complex", s)
	}
	return c, nil
}

// FormatComplex renders c as "a+bi" without parentheses. Pure real and
// pure imaginary values drop the unused part.
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	switch {
	case im == 0:
		return strconv.FormatFloat(re, 'g', -1, 64)
	case re == 0:
		return strconv.FormatFloat(im, 'g', -1, 64) + "i"
	}
	s := strconv.FormatComplex(c, 'g', -1, 128)
	return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
}

// IsZeroComplex reports whether both parts of c are zero.
func IsZeroComplex(c complex128) bool {
	return real(c) == 0 && imag(c) == 0
}
