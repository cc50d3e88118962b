package prefixes

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

//go:embed prefixes.yaml
var defaultTable []byte

// Table is a Resolver built from a YAML document of the form
//
//	feature:
//	  prefix:
//	    browser: version
//
// A prefix is required when a targeted browser is older than the listed
// version.
type Table struct {
	until [featureCount]map[VendorPrefix][browserCount]*version.Version
}

var loadDefault = sync.OnceValues(func() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultTable))
})

// DefaultTable returns the embedded prefix table.
func DefaultTable() (*Table, error) {
	return loadDefault()
}

// LoadTable reads a prefix table.
func LoadTable(r io.Reader) (*Table, error) {
	var doc map[string]map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode prefix table: %w", err)
	}

	t := &Table{}
	for fname, byPrefix := range doc {
		f, ok := FeatureByName(fname)
		if !ok {
			return nil, fmt.Errorf("prefix table: unknown feature %q", fname)
		}
		for pname, byBrowser := range byPrefix {
			vp, ok := ParseName(pname)
			if !ok || vp == None {
				return nil, fmt.Errorf("prefix table: %s: bad prefix %q", fname, pname)
			}
			var versions [browserCount]*version.Version
			for bname, ver := range byBrowser {
				br, ok := BrowserByName(bname)
				if !ok {
					return nil, fmt.Errorf("prefix table: %s/%s: unknown browser %q", fname, pname, bname)
				}
				v, err := version.NewVersion(ver)
				if err != nil {
					return nil, fmt.Errorf("prefix table: %s/%s/%s: %w", fname, pname, bname, err)
				}
				versions[br] = v
			}
			if t.until[f] == nil {
				t.until[f] = make(map[VendorPrefix][browserCount]*version.Version)
			}
			t.until[f][vp] = versions
		}
	}
	return t, nil
}

// PrefixesFor implements Resolver.
func (t *Table) PrefixesFor(f Feature, targets *Browsers) VendorPrefix {
	result := None
	if t == nil || f >= featureCount || targets.IsEmpty() {
		return result
	}
	for vp, versions := range t.until[f] {
		for br, until := range versions {
			if until == nil {
				continue
			}
			if v := targets.Version(Browser(br)); v != nil && v.LessThan(until) {
				result |= vp
				break
			}
		}
	}
	return result
}
