package serious_test

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serious-lang/serious"
)

func TestEval(t *testing.T) {
	type vc struct {
		ctx serious.Context
		r   float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, 1}}},
		{"ident", "x", []vc{
			{serious.Context{'x': 4}, 4},
			{serious.Context{'x': 5}, 5},
			{serious.Context{'x': 6}, 6},
		}},
		{"neg", "-x", []vc{
			{serious.Context{'x': 4}, -4},
			{serious.Context{'x': 5}, -5},
		}},
		{"add", "4+5+6", []vc{{nil, 15}}},
		{"sub", "8-4-2", []vc{{nil, 2}}},
		{"mul", "4*5*6", []vc{{nil, 120}}},
		{"div", "8/2/2", []vc{{nil, 2}}},
		{"pow", "2^3^2", []vc{{nil, 64}}},
		{"pow4", "4^3^2", []vc{{nil, 4096}}},
		{"prec", "2+3*4", []vc{{nil, 14}}},
		{"group", "2(3+4)", []vc{{nil, 14}}},
		{"implicit", "2x", []vc{{serious.Context{'x': 5}, 10}}},
		{"implicitdiv", "2/3x", []vc{{serious.Context{'x': 3}, 2}}},
		{"negpow", "-2^2", []vc{{nil, -4}}},
		{"zeropow", "0^0", []vc{{nil, 1}}},
		{"sqrt", "2^0.5", []vc{{nil, math.Sqrt2}}},
		{"hypot", "(x^2 + y^2)^0.5", []vc{{serious.Context{'x': 3, 'y': 4}, 5}}},
		{"poly", "-2x^2 + 3x - 5", []vc{
			{serious.Context{'x': 4}, -25},
			{serious.Context{'x': 0}, -5},
			{serious.Context{'x': 1}, -4},
		}},
		{"decimal", "1 + 2 + 3 + 4.8", []vc{{nil, 10.8}}},
		{"negexp", "2^(0-2)", []vc{{nil, 0.25}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := serious.Parse(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				r, err := a.Eval(v.ctx)
				if err != nil {
					t.Fatal("evaluation error:", err)
				}
				if r != v.r {
					t.Errorf("wrong result: want %g, got %g", v.r, r)
				}
				q, err := serious.Eval(c.src, v.ctx)
				if err != nil {
					t.Fatal("evaluation error:", err)
				}
				if math.Float64bits(q) != math.Float64bits(r) {
					t.Errorf("different results: Eval returned %g, the tree returned %g", q, r)
				}
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		ctx        serious.Context
		kind       serious.ErrorKind
		msg        string
		start, end int
	}{
		{"div-zero", "4.3/0", nil, serious.UndefinedOperation, "4.3/0 is undefined", 0, 5},
		{"div-zero-int", "10/0", nil, serious.UndefinedOperation, "10/0 is undefined", 0, 4},
		{"div-zero-deep", "2^(56 / (2 - 2)) * 3", nil, serious.UndefinedOperation, "56/0 is undefined", 2, 16},
		{"div-computed", "1/(8-8)", nil, serious.UndefinedOperation, "1/0 is undefined", 0, 7},
		{"left-error-first", "1/0 + x", nil, serious.UndefinedOperation, "1/0 is undefined", 0, 3},
		{"unbound", "x+1", nil, serious.UnboundIdentifier, "identifier x is not bound", 0, 1},
		{"unbound-second", "3 + xy", serious.Context{'x': 1}, serious.UnboundIdentifier, "identifier y is not bound", 5, 6},
		{"pow-domain", "(0-2)^0.5", nil, serious.UndefinedOperation, "-2^0.5 is undefined", 0, 9},
		{"pow-zero-neg", "0^(0-1)", nil, serious.Overflow, "0^-1 overflows float64", 0, 7},
		{"overflow-mul", "x*10", serious.Context{'x': 1e308}, serious.Overflow, "1e+308*10 overflows float64", 0, 4},
		{"overflow-pow", "9^999", nil, serious.Overflow, "9^999 overflows float64", 0, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := serious.Eval(c.src, c.ctx)
			require.Error(t, err)
			var e *serious.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, c.kind, e.Kind)
			assert.Equal(t, c.msg, e.Message)
			assert.Equal(t, c.start, e.Start)
			assert.Equal(t, c.end, e.End)
			assert.Equal(t, fmt.Sprintf("%d:%d: %s", c.start, c.end, c.msg), err.Error())
		})
	}
}

func TestEvalDeterministic(t *testing.T) {
	srcs := []string{
		"(x^2 + y^2)^0.5",
		"2^0.5 * x",
		"x/7/y",
	}
	ctx := serious.Context{'x': 3, 'y': 4}
	for _, src := range srcs {
		a, err := serious.Parse(src)
		if err != nil {
			t.Fatal(src, "failed to parse:", err)
		}
		r1, err := a.Eval(ctx)
		if err != nil {
			t.Fatal("evaluation error:", err)
		}
		r2, err := a.Eval(ctx)
		if err != nil {
			t.Fatal("evaluation error:", err)
		}
		if math.Float64bits(r1) != math.Float64bits(r2) {
			t.Errorf("%q is not deterministic: %x then %x", src, r1, r2)
		}
	}
}

func TestContextSetLookup(t *testing.T) {
	var ctx serious.Context
	if _, ok := ctx.Lookup('x'); ok {
		t.Error("empty context has x")
	}
	ctx = ctx.Set('x', 0)
	if v, ok := ctx.Lookup('x'); !ok || v != 0 {
		t.Errorf("x should be 0 but is %v, %v", v, ok)
	}
	ctx.Set('y', 1)
	if v, ok := ctx.Lookup('y'); !ok || v != 1 {
		t.Errorf("y should be 1 but is %v, %v", v, ok)
	}
	ctx = ctx.Set('x', 2).Set('z', 3)
	if v, ok := ctx.Lookup('x'); !ok || v != 2 {
		t.Errorf("x should be 2 but is %v, %v", v, ok)
	}
	r, err := serious.Eval("xyz", ctx)
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if r != 6 {
		t.Errorf("xyz should be 6 but is %g", r)
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []rune
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []rune{'x'}},
		{"sorted", "z+y+x+a", []rune{'a', 'x', 'y', 'z'}},
		{"case", "b+A+a+B", []rune{'A', 'B', 'a', 'b'}},
		{"reuse", "a+b+a+b", []rune{'a', 'b'}},
		{"hypot", "(x^2 + y^2)^0.5", []rune{'x', 'y'}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := serious.Parse(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := a.Vars()
			if !reflect.DeepEqual(vars, c.vars) {
				t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
			if len(vars) > 0 {
				vars[0] = '@'
				if v := a.Vars(); !reflect.DeepEqual(v, c.vars) {
					t.Errorf("%q aliases its variable names: got %q", c.src, v)
				}
			}
		})
	}
}

func BenchmarkEval(b *testing.B) {
	ctx := serious.Context{'x': 2, 'y': 3, 'z': 4}
	cases := []struct {
		name string
		src  string
	}{
		{"nums", "2+3+4"},
		{"vars", "x+y+z"},
		{"poly", "-2x^2 + 3x - 5"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			a, err := serious.Parse(c.src)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < b.N; i++ {
				a.Eval(ctx)
			}
		})
	}
}

func Example() {
	a, _ := serious.Parse("x^3/4 - x")
	b, _ := serious.Parse("3x^2/4 - 1")
	c, _ := serious.Parse("3x/2")

	for i := 0; i < 4; i++ {
		ctx := serious.Context{'x': float64(i)}
		y, _ := a.Eval(ctx)
		yp, _ := b.Eval(ctx)
		ypp, _ := c.Eval(ctx)
		fmt.Printf("x = %g   y = %-5g  y' = %-5g  y'' = %g\n", float64(i), y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0      y' = -1     y'' = 0
	// x = 1   y = -0.75  y' = -0.25  y'' = 1.5
	// x = 2   y = 0      y' = 2      y'' = 3
	// x = 3   y = 3.75   y' = 5.75   y'' = 4.5
}
