package config

import (
	"fmt"
	"strings"
)

// OutputMode selects how processed stylesheets are printed.
// ENUM(minified, pretty)
type OutputMode int

const (
	OutputModeMinified OutputMode = iota
	OutputModePretty
)

var outputModeNames = []string{
	OutputModeMinified: "minified",
	OutputModePretty:   "pretty",
}

func (m OutputMode) String() string {
	if m >= 0 && int(m) < len(outputModeNames) {
		return outputModeNames[m]
	}
	return fmt.Sprintf("OutputMode(%d)", int(m))
}

// ParseOutputMode accepts mode names in any case.
func ParseOutputMode(name string) (OutputMode, error) {
	for i, n := range outputModeNames {
		if strings.EqualFold(n, name) {
			return OutputMode(i), nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid OutputMode, try [%s]", name, strings.Join(outputModeNames, ", "))
}

func (m OutputMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OutputMode) UnmarshalText(text []byte) error {
	v, err := ParseOutputMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Minify reports whether output is minified.
func (m OutputMode) Minify() bool {
	return m == OutputModeMinified
}
