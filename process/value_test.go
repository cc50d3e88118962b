package process

import (
	"errors"
	"strings"
	"testing"

	"cssmin/config"
	"cssmin/values"
)

func TestExplainValue(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    string
		explain  bool
		contains []string
		absent   []string
	}{
		{
			name:     "plain",
			property: "border-radius",
			value:    "0.5em",
			contains: []string{"border-radius [none]\n", "  value: 0.5em | .5em\n"},
		},
		{
			name:     "transform without explain",
			property: "-webkit-transform",
			value:    "translate(10px, 0px)",
			contains: []string{"transform [webkit]\n", "value: translate(10px)\n"},
			absent:   []string{"folded:"},
		},
		{
			name:     "transform explained",
			property: "transform",
			value:    "translate(10px, 0px) scale(2)",
			explain:  true,
			contains: []string{
				"  value: translate(10px) scale(2) | matrix(2,0,0,2,10,0)\n",
				"  functions:\n",
				"    #1: translate(10px)\n",
				"      matrix:\n",
				"  folded:\n",
				"  decomposition:\n",
				"    translate (10,",
				"    scale (2, 2, 1)\n",
				"  candidates:\n",
				"    matrix: matrix(2,0,0,2,10,0) (20)\n",
				"  best: matrix(2,0,0,2,10,0)\n",
			},
		},
		{
			name:     "not foldable",
			property: "transform",
			value:    "translate(50%) rotate(5deg)",
			explain:  true,
			contains: []string{"matrix: not available", "list does not fold into a matrix"},
			absent:   []string{"best:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			if err := explainValue(&sb, tt.property, tt.value, tt.explain); err != nil {
				t.Fatalf("explainValue() error = %v", err)
			}
			got := sb.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output lacks %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("output has %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestExplainValue_Errors(t *testing.T) {
	err := explainValue(&strings.Builder{}, "transform", "rotate(10px)", false)
	var se *values.SyntaxError
	if !errors.As(err, &se) || se.Kind != values.InvalidValue {
		t.Errorf("explainValue() error = %v, want InvalidValue", err)
	}

	if err := explainValue(&strings.Builder{}, "color", "red", false); err == nil {
		t.Error("expected error for unsupported property")
	}
}

func TestMergeDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		targets map[string]string
		tmpl    string
		pretty  bool
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "outline longhands",
			input: "outline-width: 2px; outline-style: solid; outline-color: #ff0000; color: blue !important",
			want:  "outline: 2px solid #f00\ncolor: blue !important\n",
		},
		{
			name:   "pretty values",
			pretty: true,
			input:  "outline-width: 2px;\noutline-style: solid;\noutline-color: #ff0000",
			want:   "outline: 2px solid #ff0000\n",
		},
		{
			name:    "prefixes from targets",
			targets: map[string]string{"safari": "4"},
			tmpl:    "{{ .Prefix }}|{{ .Name }}={{ .Value }}",
			input:   "transform: scale(2)",
			want:    "-webkit-|-webkit-transform=scale(2)\n|transform=scale(2)\n",
		},
		{
			name:    "not a declaration list",
			input:   "} a {",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			env.Cfg.Targets = tt.targets
			if tt.tmpl != "" {
				env.Cfg.Output.DeclarationTemplate = tt.tmpl
			}
			if tt.pretty {
				env.Cfg.Output.Mode = config.OutputModePretty
			}
			if err := env.PrepareTargets(); err != nil {
				t.Fatal(err)
			}

			var sb strings.Builder
			err := mergeDeclarations(&sb, env, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("mergeDeclarations() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := sb.String(); !tt.wantErr && got != tt.want {
				t.Errorf("mergeDeclarations() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
