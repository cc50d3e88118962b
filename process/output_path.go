package process

import (
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"cssmin/config"
)

// buildOutputPath expands the name template for the stylesheet at src
// (slash separated, relative to the processed root) and roots the result
// at dst. Every path element is cleaned, an expansion which yields nothing
// usable falls back to the source name.
func buildOutputPath(tmpl *template.Template, src, dst string, mode config.OutputMode) (string, error) {
	ext := path.Ext(src)
	v := NameValues{
		Context: string(config.NameTemplateFieldName),
		Dir:     path.Dir(src),
		Base:    strings.TrimSuffix(path.Base(src), ext),
		Ext:     ext,
		Source:  src,
		Mode:    mode.String(),
	}

	expanded, err := expandTemplate(tmpl, v)
	if err != nil {
		return "", err
	}
	segments := splitAndCleanPath(expanded)
	if len(segments) == 0 {
		segments = splitAndCleanPath(src)
	}
	return filepath.Join(append([]string{dst}, segments...)...), nil
}

func splitAndCleanPath(name string) []string {
	name = path.Clean(filepath.ToSlash(strings.TrimSpace(name)))
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(name, "/") {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, config.CleanFileName(s))
	}
	return segments
}
