package misiurewicz

import (
	"fmt"
	"io"
	"strings"
)

// Format writes the polynomial followed by one line per root.
func (r Result) Format(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Misiurewicz(%d,%d) polynomial is %v\n", r.K, r.N, r.Polynomial); err != nil {
		return err
	}
	if r.TrivialRoots > 0 {
		if _, err := fmt.Fprintf(w, "0 is a root of multiplicity %d\n", r.TrivialRoots); err != nil {
			return err
		}
	}
	for _, root := range r.Roots {
		if _, err := fmt.Fprintf(w, "%s\n", root); err != nil {
			return err
		}
	}
	if r.Missing > 0 {
		if _, err := fmt.Fprintf(w, "%d roots not found\n", r.Missing); err != nil {
			return err
		}
	}
	if r.Degraded {
		_, err := fmt.Fprintln(w, "degraded: some roots did not converge")
		return err
	}
	return nil
}

func (r Result) String() string {
	var sb strings.Builder
	_ = r.Format(&sb)
	return sb.String()
}

func (r Root) String() string {
	s := fmt.Sprintf("%.12g (error=%.3g)", r.Value, r.Residual)
	switch {
	case !r.Converged:
		s += " not converged"
	case r.Polished:
		s += " polished"
	}
	return s
}
