package properties_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/properties"
	"cssmin/values"
)

// parseDecls reads "name: value" lines, a trailing !important is honored.
func parseDecls(t *testing.T, lines ...string) []properties.Property {
	t.Helper()
	out := make([]properties.Property, 0, len(lines))
	for _, l := range lines {
		name, value, ok := strings.Cut(l, ":")
		if !ok {
			t.Fatalf("bad declaration %q", l)
		}
		value = strings.TrimSpace(value)
		important := false
		if v, found := strings.CutSuffix(value, "!important"); found {
			value, important = strings.TrimSpace(v), true
		}
		p, err := properties.ParseProperty(strings.TrimSpace(name), value)
		if err != nil {
			t.Fatalf("ParseProperty(%q) error = %v", l, err)
		}
		p.Important = important
		out = append(out, p)
	}
	return out
}

func render(t *testing.T, props []properties.Property) []string {
	t.Helper()
	out := make([]string, 0, len(props))
	for _, p := range props {
		s, err := values.ToCSSString(p, false)
		if err != nil {
			t.Fatalf("ToCSSString() error = %v", err)
		}
		out = append(out, s)
	}
	return out
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func targetsFor(t *testing.T, browsers map[string]string) properties.Targets {
	t.Helper()
	table, err := prefixes.DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable() error = %v", err)
	}
	b, err := prefixes.ParseBrowsers(browsers)
	if err != nil {
		t.Fatalf("ParseBrowsers() error = %v", err)
	}
	return properties.Targets{Browsers: b, Resolver: table}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		targets map[string]string
		want    []string
	}{
		{
			name: "common prefix becomes shorthand",
			in: []string{
				"border-top-left-radius: 1px",
				"-webkit-border-top-left-radius: 1px",
				"border-top-right-radius: 1px",
				"border-bottom-left-radius: 1px",
				"border-bottom-right-radius: 1px",
			},
			want: []string{
				"border-radius: 1px",
				"-webkit-border-top-left-radius: 1px",
			},
		},
		{
			name: "later unprefixed override keeps order",
			in: []string{
				"-webkit-border-radius: 2px",
				"border-radius: 3px",
			},
			want: []string{
				"-webkit-border-radius: 2px",
				"border-radius: 3px",
			},
		},
		{
			name: "same value under two prefixes",
			in: []string{
				"-webkit-border-radius: 2px",
				"border-radius: 2px",
			},
			want: []string{
				"-webkit-border-radius: 2px; border-radius: 2px",
			},
		},
		{
			name: "corners collapse",
			in: []string{
				"border-top-left-radius: 1px",
				"border-top-right-radius: 2px",
				"border-bottom-right-radius: 1px",
				"border-bottom-left-radius: 2px 4px",
			},
			want: []string{
				"border-radius: 1px 2px / 1px 2px 1px 4px",
			},
		},
		{
			name: "single corners in output order",
			in: []string{
				"border-bottom-right-radius: 3px",
				"border-bottom-left-radius: 4px",
				"border-top-left-radius: 1px",
			},
			want: []string{
				"border-top-left-radius: 1px",
				"border-bottom-left-radius: 4px",
				"border-bottom-right-radius: 3px",
			},
		},
		{
			name: "shorthand then longhand override",
			in: []string{
				"border-radius: 5px",
				"border-top-left-radius: 0",
			},
			want: []string{
				"border-radius: 0px 5px 5px",
			},
		},
		{
			name: "logical corners stay in place",
			in: []string{
				"border-top-left-radius: 1px",
				"border-start-start-radius: 2px",
				"border-top-right-radius: 3px",
			},
			want: []string{
				"border-top-left-radius: 1px",
				"border-start-start-radius: 2px",
				"border-top-right-radius: 3px",
			},
		},
		{
			name: "shorthand drops buffered logical corners",
			in: []string{
				"border-end-end-radius: 2px",
				"border-radius: 4px",
			},
			want: []string{
				"border-radius: 4px",
			},
		},
		{
			name:    "targets widen unprefixed radius",
			in:      []string{"border-radius: 5px"},
			targets: map[string]string{"chrome": "4", "firefox": "3.5"},
			want:    []string{"-webkit-border-radius: 5px; -moz-border-radius: 5px; border-radius: 5px"},
		},
		{
			name:    "modern targets keep unprefixed",
			in:      []string{"border-top-left-radius: 5px"},
			targets: map[string]string{"chrome": "100"},
			want:    []string{"border-top-left-radius: 5px"},
		},
		{
			name: "outline longhands",
			in: []string{
				"outline-color: red",
				"outline-style: solid",
				"outline-width: 2px",
			},
			want: []string{"outline: 2px solid red"},
		},
		{
			name: "partial outline",
			in: []string{
				"outline-style: dashed",
				"outline-color: blue",
			},
			want: []string{
				"outline-color: blue",
				"outline-style: dashed",
			},
		},
		{
			name: "outline shorthand then longhand",
			in: []string{
				"outline: thin dotted",
				"outline-color: #fff",
			},
			want: []string{"outline: thin dotted #fff"},
		},
		{
			name: "transform prefixes collapse",
			in: []string{
				"-webkit-transform: rotate(45deg)",
				"-moz-transform: rotate(45deg)",
				"transform: rotate(45deg)",
			},
			want: []string{"-webkit-transform: rotate(45deg); -moz-transform: rotate(45deg); transform: rotate(45deg)"},
		},
		{
			name: "transform prefixes differ",
			in: []string{
				"-webkit-transform: rotate(1deg)",
				"transform: rotate(2deg)",
			},
			want: []string{
				"-webkit-transform: rotate(1deg)",
				"transform: rotate(2deg)",
			},
		},
		{
			name:    "transform widened for old safari",
			in:      []string{"transform-style: preserve-3d"},
			targets: map[string]string{"safari": "8"},
			want:    []string{"-webkit-transform-style: preserve-3d; transform-style: preserve-3d"},
		},
		{
			name: "unhandled declarations pass through first",
			in: []string{
				"outline-color: red",
				"color: blue",
				"margin: 1px 2px 1px 2px",
			},
			want: []string{
				"color: blue",
				"margin: 1px 2px",
				"outline-color: red",
			},
		},
		{
			name: "important kept apart",
			in: []string{
				"outline-color: red !important",
				"outline-style: solid",
				"outline-color: green",
			},
			want: []string{
				"outline-color: green",
				"outline-style: solid",
				"outline-color: red !important",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var targets properties.Targets
			if tt.targets != nil {
				targets = targetsFor(t, tt.targets)
			}
			got := render(t, properties.Merge(parseDecls(t, tt.in...), targets, zap.NewNop()))
			if !equalLines(got, tt.want) {
				t.Errorf("Merge() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestFlushIdempotent(t *testing.T) {
	h := properties.NewBorderRadiusHandler(properties.Targets{}, zap.NewNop())
	if got := h.Finalize(); len(got) != 0 {
		t.Errorf("Finalize() on empty handler = %v", got)
	}
	for _, p := range parseDecls(t, "border-radius: 1px") {
		h.HandleProperty(p)
	}
	if got := h.Finalize(); len(got) != 1 {
		t.Fatalf("Finalize() = %d properties, want 1", len(got))
	}
	if got := h.Finalize(); len(got) != 0 {
		t.Errorf("second Finalize() = %v, want nothing", got)
	}
}

func TestHandlerRejects(t *testing.T) {
	p := parseDecls(t, "transform: none")[0]
	if properties.NewOutlineHandler(zap.NewNop()).HandleProperty(p) {
		t.Error("outline handler accepted transform")
	}
	if properties.NewBorderRadiusHandler(properties.Targets{}, zap.NewNop()).HandleProperty(p) {
		t.Error("border radius handler accepted transform")
	}
	if !properties.NewTransformHandler(properties.Targets{}, zap.NewNop()).HandleProperty(p) {
		t.Error("transform handler rejected transform")
	}
}
