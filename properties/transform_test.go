package properties_test

import (
	"errors"
	"testing"

	"cssmin/properties"
	"cssmin/values"
)

func TestTransformListToCSS(t *testing.T) {
	tests := []struct {
		in     string
		pretty string
		minify string
	}{
		{"matrix(1, 0, 0, 1, 10, 20)", "matrix(1, 0, 0, 1, 10, 20)", "translate(10px,20px)"},
		{"scale3d(2, 2, 1)", "scale3d(2, 2, 1)", "scale(2)"},
		{"translate3d(5px, 0, 0)", "translate3d(5px, 0px, 0px)", "translate(5px)"},
		{"translate3d(0, 0, 0)", "translate3d(0px, 0px, 0px)", "translate(0)"},
		{"rotate3d(0, 0, 2, 10deg)", "rotate3d(0, 0, 2, 10deg)", "rotate(10deg)"},
		{"rotate3d(3, 0, 0, 10deg) translate(50%)", "rotate3d(3, 0, 0, 10deg) translate(50%)", "rotateX(10deg)translate(50%)"},
		{"rotate(90deg)", "rotate(90deg)", "rotate(90deg)"},
		{"rotateZ(10deg)", "rotateZ(10deg)", "rotate(10deg)"},
		{"translate(10px) translate(5px)", "translate(10px) translate(5px)", "translate(15px)"},
		{"scale(1, 2)", "scale(1, 2)", "scaleY(2)"},
		{"skewX(30deg)", "skewX(30deg)", "skew(30deg)"},
		{"translate(50%)", "translate(50%)", "translate(50%)"},
		{"translate(50%) rotate(5deg)", "translate(50%) rotate(5deg)", "translate(50%)rotate(5deg)"},
		{"none", "none", "none"},
		{"TRANSLATEX(0.5em)", "translateX(0.5em)", "translate(.5em)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			list, err := values.ParseString(tt.in, properties.ParseTransformList)
			if err != nil {
				t.Fatalf("ParseTransformList(%q) error = %v", tt.in, err)
			}
			if got, _ := values.ToCSSString(list, false); got != tt.pretty {
				t.Errorf("pretty = %q, want %q", got, tt.pretty)
			}
			if got, _ := values.ToCSSString(list, true); got != tt.minify {
				t.Errorf("minified = %q, want %q", got, tt.minify)
			}
		})
	}
}

func TestTransformParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind values.ErrorKind
	}{
		{"foo(1px)", values.UnexpectedToken},
		{"rotate(10px)", values.InvalidValue},
		{"translate(5)", values.InvalidValue},
		{"matrix(1, 0, 0, 1, 0)", values.UnexpectedEnd},
		{"rotate(1deg) 5px", values.UnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := values.ParseString(tt.in, properties.ParseTransformList)
			var se *values.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want SyntaxError", err)
			}
			if se.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", se.Kind, tt.kind)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	list, err := values.ParseString("translate(10px) scale(2)", properties.ParseTransformList)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := list.Candidates()
	if !ok {
		t.Fatal("Candidates() not available for absolute list")
	}
	if c.Steps == nil {
		t.Fatal("folded matrix did not decompose")
	}
	if c.Base != "translate(10px)scale(2)" {
		t.Errorf("Base = %q", c.Base)
	}
	if c.Decomposed != c.Base {
		t.Errorf("Decomposed = %q, want %q", c.Decomposed, c.Base)
	}
	if c.Matrix != "matrix(2,0,0,2,10,0)" {
		t.Errorf("Matrix = %q", c.Matrix)
	}
	if got := c.Best(); got != c.Matrix {
		t.Errorf("Best() = %q, want %q", got, c.Matrix)
	}

	rel, err := values.ParseString("translate(1em)", properties.ParseTransformList)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rel.Candidates(); ok {
		t.Error("Candidates() available for relative length")
	}
}

func TestTransformProperties(t *testing.T) {
	tests := []struct {
		name, value string
		pretty      string
		minify      string
	}{
		{"transform-origin", "left top", "left top", "left top"},
		{"transform-origin", "center", "center", "50%"},
		{"transform-origin", "center center 10px", "center center 10px", "50% 50% 10px"},
		{"transform-style", "preserve-3d", "preserve-3d", "preserve-3d"},
		{"transform-box", "fill-box", "fill-box", "fill-box"},
		{"backface-visibility", "hidden", "hidden", "hidden"},
		{"perspective", "none", "none", "none"},
		{"perspective", "100px", "100px", "100px"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.value, func(t *testing.T) {
			p, err := properties.ParseProperty(tt.name, tt.value)
			if err != nil {
				t.Fatalf("ParseProperty() error = %v", err)
			}
			if got, _ := p.ValueString(false); got != tt.pretty {
				t.Errorf("pretty = %q, want %q", got, tt.pretty)
			}
			if got, _ := p.ValueString(true); got != tt.minify {
				t.Errorf("minified = %q, want %q", got, tt.minify)
			}
		})
	}
}
