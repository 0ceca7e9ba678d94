// roots prints the Misiurewicz(k,n) polynomial and its roots with the error
// of each root, optionally plotting the residuals.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/malfet/Mandelbrot/internal/logging"
	"github.com/malfet/Mandelbrot/misiurewicz"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("roots", flag.ContinueOnError)
	var (
		k        = fs.Int("k", 4, "preperiod")
		n        = fs.Int("n", 2, "period")
		method   = fs.String("method", "bairstow", "bairstow or laguerre")
		steps    = fs.Int("steps", 0, "root finder step budget (0 for the default)")
		polish   = fs.Bool("polish", false, "refine every root with laguerre on the undeflated polynomial")
		plot     = fs.Bool("plot", false, "plot log10 of the residuals")
		plain    = fs.Bool("plain", false, "print the unstyled report")
		logLevel = fs.String("log", "warn", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.Setup(*logLevel)
	if err != nil {
		return err
	}
	m, err := misiurewicz.ParseMethod(*method)
	if err != nil {
		return err
	}

	solver := misiurewicz.Solver{Method: m, MaxSteps: *steps, Polish: *polish, Logger: logger}
	res, err := solver.Solve(*k, *n)
	if err != nil {
		return err
	}

	if *plain {
		if err := res.Format(stdout); err != nil {
			return err
		}
	} else {
		fmt.Fprint(stdout, report(res))
	}
	if *plot && len(res.Roots) > 1 {
		fmt.Fprintln(stdout, plotResiduals(res))
	}
	return nil
}
