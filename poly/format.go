package poly

import (
	"fmt"
	"strings"
)

// String prints p highest degree first, e.g. "x^4+2x^3-1".
func (p Poly[T]) String() string {
	var b strings.Builder
	printed := false
	term := func(a T, power string) {
		if printed && !IsNegative(a) {
			b.WriteByte('+')
		}
		if a != 1 || power == "" {
			fmt.Fprint(&b, a)
		}
		b.WriteString(power)
		printed = true
	}

	for i := p.Degree(); i > 1; i-- {
		if a := p.Coef(i); a != 0 {
			term(a, fmt.Sprintf("x^%d", i))
		}
	}
	if a := p.Coef(1); p.Degree() > 0 && a != 0 {
		term(a, "x")
	}
	if a := p.Coef(0); a != 0 || !printed {
		term(a, "")
	}
	return b.String()
}
