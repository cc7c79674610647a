package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/serious-lang/serious"
)

var (
	given     []string
	givenFile string
	format    string
	tree      bool
	prec      uint
)

var rootCmd = &cobra.Command{
	Use:   "serious [expression ...]",
	Short: "Evaluate arithmetic expressions",
	Long: `Serious evaluates arithmetic written the way you'd note it down, with
implicit multiplication and single-letter variables. With no arguments it
reads expressions from standard input, one per line.

Bindings from --given apply on top of --given-file, and each value is itself
an expression, so --given "x=2^10" binds x to 1024.`,
	Run: run,
}

func init() {
	rootCmd.Flags().StringArrayVar(&given, "given", nil, `"name=value" variable binding (any number of times)`)
	rootCmd.Flags().StringVar(&givenFile, "given-file", "", "YAML file of name: value variable bindings")
	rootCmd.Flags().StringVar(&format, "format", "%v", "result formatting verb")
	rootCmd.Flags().BoolVar(&tree, "tree", false, "print parse trees alongside results")
	rootCmd.Flags().UintVar(&prec, "prec", 0, "bits of precision to evaluate with (0 uses float64)")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	ctx, bctx, err := bindings()
	if err != nil {
		log.Fatal(err)
	}
	verb := format + "\n"
	if len(args) > 0 {
		for _, src := range args {
			if err := eval(src, ctx, bctx, verb); err != nil {
				log.Fatal(err)
			}
		}
		return
	}
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		src := strings.TrimSpace(sc.Text())
		if src == "" {
			continue
		}
		if err := eval(src, ctx, bctx, verb); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

func eval(src string, ctx serious.Context, bctx *serious.BigContext, verb string) error {
	a, err := serious.Parse(src)
	if err != nil {
		return err
	}
	if tree {
		fmt.Printf("%v : ", a)
	}
	if bctx != nil {
		r, err := a.EvalBig(bctx)
		if err != nil {
			return err
		}
		fmt.Printf(verb, r)
		return nil
	}
	r, err := a.Eval(ctx)
	if err != nil {
		return err
	}
	fmt.Printf(verb, r)
	return nil
}

// bindings builds the evaluation context from --given-file and then --given,
// in that order, so flags override the file.
func bindings() (serious.Context, *serious.BigContext, error) {
	defs := make(map[string]string)
	if givenFile != "" {
		buf, err := os.ReadFile(givenFile)
		if err != nil {
			return nil, nil, err
		}
		if err := yaml.Unmarshal(buf, &defs); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %v", givenFile, err)
		}
	}
	for _, s := range given {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return nil, nil, fmt.Errorf(`variable bindings must be "name=value", not %q`, s)
		}
		defs[strings.TrimSpace(d[0])] = strings.TrimSpace(d[1])
	}
	if prec > 0 {
		bctx := serious.NewBigContext(prec)
		for nm, vl := range defs {
			name, err := varname(nm)
			if err != nil {
				return nil, nil, err
			}
			a, err := serious.Parse(vl)
			if err != nil {
				return nil, nil, fmt.Errorf("setting %s: %v", nm, err)
			}
			r, err := a.EvalBig(serious.NewBigContext(prec))
			if err != nil {
				return nil, nil, fmt.Errorf("setting %s: %v", nm, err)
			}
			bctx.Set(name, r)
		}
		return nil, bctx, nil
	}
	var ctx serious.Context
	for nm, vl := range defs {
		name, err := varname(nm)
		if err != nil {
			return nil, nil, err
		}
		r, err := serious.Eval(vl, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("setting %s: %v", nm, err)
		}
		ctx = ctx.Set(name, r)
	}
	return ctx, nil, nil
}

// varname checks that a binding name is a single letter the scanner accepts
// as an identifier.
func varname(s string) (rune, error) {
	r, sz := utf8.DecodeRuneInString(s)
	if sz < len(s) || !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z') {
		return 0, fmt.Errorf("variable names must be single letters, not %q", s)
	}
	return r, nil
}
