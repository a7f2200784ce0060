// Command umfsolve factorizes a Matrix Market matrix and solves one
// right-hand side against it. With -i it opens an interactive browser
// over the control and info vectors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
	"github.com/sparsekit/umfbridge/umf"
)

var sysNames = map[string]native.Sys{
	"A":   native.SysA,
	"At":  native.SysAt,
	"Aat": native.SysAat,
	"L":   native.SysL,
	"Lt":  native.SysLt,
	"U":   native.SysU,
	"Ut":  native.SysUt,
}

func main() {
	var (
		matrixPath = flag.String("matrix", "", "matrix in Matrix Market coordinate format")
		rhsPath    = flag.String("rhs", "", "right-hand side, one value per line (default: all ones)")
		sysName    = flag.String("sys", "A", "system to solve: A, At, Aat, L, Lt, U, Ut")
		long       = flag.Bool("long", false, "use the 64-bit index family")
		interact   = flag.Bool("i", false, "interactive mode")
		verbose    = flag.Bool("v", false, "verbose logging")
		maxCond    = flag.Float64("maxcond", 1e12, "condition estimate warning threshold")
		showCtl    = flag.Bool("list", false, "print the control parameters and exit")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fatal(err)
		}
		log = dev
		defer log.Sync()
	}

	if *long {
		run[int64](*matrixPath, *rhsPath, *sysName, *interact, *showCtl, *maxCond, log)
		return
	}
	run[int32](*matrixPath, *rhsPath, *sysName, *interact, *showCtl, *maxCond, log)
}

func run[I native.Index](matrixPath, rhsPath, sysName string, interact, showCtl bool, maxCond float64, log *zap.Logger) {
	ctx := umf.New[I](umf.WithLogger(log), umf.WithMaxCond(maxCond))
	defer ctx.Free()

	if showCtl {
		fmt.Printf("backend: %s\n\n%s", ctx.Library().Name, ctx.ControlString())
		return
	}

	sys, ok := sysNames[sysName]
	if !ok {
		fatal(fmt.Errorf("unknown system %q", sysName))
	}
	if matrixPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	m, err := sparse.ReadMatrixMarketFile[I](matrixPath)
	if err != nil {
		fatal(err)
	}

	if interact {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatal(fmt.Errorf("interactive mode needs a terminal"))
		}
		if err := runInteractive(ctx, m, sys); err != nil {
			fatal(err)
		}
		return
	}

	b, err := loadRHS(rhsPath, m)
	if err != nil {
		fatal(err)
	}

	if m.Complex() {
		bz := make([]complex128, len(b))
		for i, v := range b {
			bz[i] = complex(v, 0)
		}
		x, err := ctx.SolveComplex(sys, m, bz)
		if err != nil {
			fatal(err)
		}
		for _, v := range x {
			fmt.Printf("%g %g\n", real(v), imag(v))
		}
	} else {
		x, err := ctx.LinSolve(sys, m, b)
		if err != nil {
			fatal(err)
		}
		for _, v := range x {
			fmt.Printf("%g\n", v)
		}
	}
	fmt.Fprintf(os.Stderr, "\n%s", ctx.InfoString())
}

func loadRHS[I native.Index](path string, m *sparse.Matrix[I]) ([]float64, error) {
	n := m.NRow
	if path == "" {
		b := make([]float64, n)
		for i := range b {
			b[i] = 1
		}
		return b, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing rhs: %w", err)
			}
			b = append(b, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("rhs has %d entries, matrix has %d rows", len(b), n)
	}
	return b, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "umfsolve:", err)
	os.Exit(1)
}
