package prefixes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
)

// Browser identifies a browser family of the target list.
type Browser uint8

const (
	Chrome Browser = iota
	Firefox
	Safari
	Opera
	IE
	Edge
	IOSSafari
	Android

	browserCount
)

var browserNames = [browserCount]string{
	Chrome:    "chrome",
	Firefox:   "firefox",
	Safari:    "safari",
	Opera:     "opera",
	IE:        "ie",
	Edge:      "edge",
	IOSSafari: "ios_saf",
	Android:   "android",
}

func (b Browser) String() string {
	if b < browserCount {
		return browserNames[b]
	}
	return fmt.Sprintf("Browser(%d)", int(b))
}

// BrowserByName accepts names as written in configuration.
func BrowserByName(name string) (Browser, bool) {
	for i, n := range browserNames {
		if strings.EqualFold(n, name) {
			return Browser(i), true
		}
	}
	return 0, false
}

// Browsers is a set of minimum browser versions output has to support.
// Browsers without version are not targeted.
type Browsers struct {
	versions [browserCount]*version.Version
}

// ParseBrowsers builds targets from browser name to version pairs.
func ParseBrowsers(targets map[string]string) (*Browsers, error) {
	b := &Browsers{}
	for name, ver := range targets {
		if err := b.Set(name, ver); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Set records the minimum version of a browser.
func (b *Browsers) Set(name, ver string) error {
	br, ok := BrowserByName(name)
	if !ok {
		return fmt.Errorf("unknown browser %q", name)
	}
	v, err := version.NewVersion(ver)
	if err != nil {
		return fmt.Errorf("browser %s: bad version %q: %w", name, ver, err)
	}
	b.versions[br] = v
	return nil
}

// Version returns minimum version for br or nil when br is not targeted.
func (b *Browsers) Version(br Browser) *version.Version {
	if b == nil || br >= browserCount {
		return nil
	}
	return b.versions[br]
}

func (b *Browsers) IsEmpty() bool {
	if b == nil {
		return true
	}
	for _, v := range b.versions {
		if v != nil {
			return false
		}
	}
	return true
}

func (b *Browsers) String() string {
	if b.IsEmpty() {
		return "none"
	}
	parts := make([]string, 0, browserCount)
	for i, v := range b.versions {
		if v != nil {
			parts = append(parts, Browser(i).String()+" "+v.Original())
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
