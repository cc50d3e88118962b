package rules_test

import (
	"testing"

	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/properties"
	"cssmin/rules"
	"cssmin/values"
)

func TestKeyframeSelectors(t *testing.T) {
	tests := []struct {
		in      string
		pretty  string
		minify  string
		wantErr bool
	}{
		{in: "from", pretty: "from", minify: "0%"},
		{in: "TO", pretty: "to", minify: "to"},
		{in: "100%", pretty: "100%", minify: "to"},
		{in: "from, 50%, to", pretty: "from, 50%, to", minify: "0%,50%,to"},
		{in: "0%", pretty: "0%", minify: "0%"},
		{in: "middle", wantErr: true},
		{in: "10px", wantErr: true},
		{in: "from,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sels, err := values.ParseString(tt.in, rules.ParseKeyframeSelectors)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyframeSelectors() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			k := rules.Keyframe{Selectors: sels}
			pretty, _ := values.ToCSSString(k, false)
			if want := tt.pretty + " {}"; pretty != want {
				t.Errorf("pretty = %q, want %q", pretty, want)
			}
			minified, _ := values.ToCSSString(k, true)
			if want := tt.minify + "{}"; minified != want {
				t.Errorf("minified = %q, want %q", minified, want)
			}
		})
	}
}

func decl(t *testing.T, name, value string) properties.Property {
	t.Helper()
	p, err := properties.ParseProperty(name, value)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sampleRule(t *testing.T) rules.KeyframesRule {
	return rules.KeyframesRule{
		Name:   "spin",
		Prefix: prefixes.None,
		Keyframes: []rules.Keyframe{
			{
				Selectors:    []rules.KeyframeSelector{{Kind: rules.SelectorFrom}},
				Declarations: properties.DeclarationBlock{decl(t, "transform", "rotate(0deg)")},
			},
			{
				Selectors:    []rules.KeyframeSelector{{Kind: rules.SelectorTo}},
				Declarations: properties.DeclarationBlock{decl(t, "transform", "rotate(360deg)")},
			},
		},
	}
}

func TestKeyframesRuleToCSS(t *testing.T) {
	r := sampleRule(t)
	r.Prefix = prefixes.None.Union(prefixes.WebKit)

	pretty, err := values.ToCSSString(r, false)
	if err != nil {
		t.Fatal(err)
	}
	block := func(at string) string {
		return at + " spin {\n" +
			"  from {\n    transform: rotate(0deg);\n  }\n\n" +
			"  to {\n    transform: rotate(360deg);\n  }\n}"
	}
	if want := block("@-webkit-keyframes") + "\n\n" + block("@keyframes"); pretty != want {
		t.Errorf("pretty =\n%s\nwant\n%s", pretty, want)
	}

	minified, _ := values.ToCSSString(r, true)
	body := "{0%{transform:rotate(0deg)}to{transform:rotate(360deg)}}"
	if want := "@-webkit-keyframes spin" + body + "@keyframes spin" + body; minified != want {
		t.Errorf("minified = %q, want %q", minified, want)
	}
}

func TestApplyTargets(t *testing.T) {
	table, err := prefixes.DefaultTable()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		browsers map[string]string
		prefix   prefixes.VendorPrefix
		want     prefixes.VendorPrefix
	}{
		{"old opera", map[string]string{"opera": "12"}, prefixes.None, prefixes.None.Union(prefixes.WebKit).Union(prefixes.O)},
		{"modern", map[string]string{"chrome": "120"}, prefixes.None, prefixes.None},
		{"prefixed only", map[string]string{"firefox": "5"}, prefixes.Moz, prefixes.Moz},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := prefixes.ParseBrowsers(tt.browsers)
			if err != nil {
				t.Fatal(err)
			}
			r := rules.KeyframesRule{Name: "x", Prefix: tt.prefix}
			r.ApplyTargets(properties.Targets{Browsers: b, Resolver: table})
			if r.Prefix != tt.want {
				t.Errorf("Prefix = %v, want %v", r.Prefix, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	r := rules.KeyframesRule{Name: "fade", Prefix: prefixes.None, Keyframes: []rules.Keyframe{{
		Selectors: []rules.KeyframeSelector{{Kind: rules.SelectorPercentage, Percent: 0.5}},
		Declarations: properties.DeclarationBlock{
			decl(t, "outline-width", "1px"),
			decl(t, "outline-style", "solid"),
			decl(t, "outline-color", "red"),
		},
	}}}
	r.Merge(properties.Targets{}, zap.NewNop())
	got, _ := values.ToCSSString(r, true)
	if want := "@keyframes fade{50%{outline:1px solid red}}"; got != want {
		t.Errorf("merged = %q, want %q", got, want)
	}
}
