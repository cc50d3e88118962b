package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssmin/config"
	"cssmin/css"
	"cssmin/properties"
	"cssmin/state"
	"cssmin/utils/debug"
	"cssmin/values/matrix"
)

// Value prints a single parsed property value, with --explain also how a
// transform list is folded and encoded.
func Value(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return errors.New("property name and value are required")
	}
	env := state.EnvFromContext(ctx)
	name, value := cmd.Args().First(), strings.Join(cmd.Args().Tail(), " ")
	env.Log.Debug("Inspecting value", zap.String("property", name), zap.String("value", value))
	return explainValue(os.Stdout, name, value, cmd.Bool("explain"))
}

func explainValue(w io.Writer, name, value string, explain bool) error {
	prop, err := properties.ParseProperty(name, value)
	if err != nil {
		return err
	}
	if prop.ID == properties.PropUnparsed {
		return fmt.Errorf("property %q is not supported", name)
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "%s [%s]", prop.ID, prop.Prefix)
	tw.Value(1, "value", prop.Value)
	if list, ok := prop.Value.(properties.TransformList); ok && explain {
		explainTransform(tw, list)
	}
	_, err = io.WriteString(w, tw.String())
	return err
}

func explainTransform(tw *debug.TreeWriter, list properties.TransformList) {
	tw.Line(1, "functions:")
	for i, t := range list {
		tw.Value(2, fmt.Sprintf("#%d", i+1), t)
		if m, ok := t.ToMatrix(); ok {
			tw.Matrix(3, "matrix", m)
		} else {
			tw.Line(3, "matrix: not available")
		}
	}

	c, ok := list.Candidates()
	if !ok {
		tw.Line(1, "list does not fold into a matrix")
		return
	}
	tw.Matrix(1, "folded", c.Folded)
	if c.Steps == nil {
		tw.Line(1, "decomposition: none")
	} else {
		tw.Line(1, "decomposition:")
		for _, s := range c.Steps {
			tw.Line(2, "%s", describeStep(s))
		}
	}
	tw.Line(1, "candidates:")
	tw.Line(2, "functions: %s (%d)", c.Base, len(c.Base))
	if c.Decomposed != "" {
		tw.Line(2, "decomposed: %s (%d)", c.Decomposed, len(c.Decomposed))
	}
	tw.Line(2, "matrix: %s (%d)", c.Matrix, len(c.Matrix))
	tw.Line(1, "best: %s", c.Best())
}

func describeStep(s matrix.Step) string {
	switch s.Kind {
	case matrix.StepPerspective:
		return fmt.Sprintf("%s %g", s.Kind, s.Distance)
	case matrix.StepRotate:
		return fmt.Sprintf("%s (%g, %g, %g) %gdeg", s.Kind, s.X, s.Y, s.Z, s.Angle)
	case matrix.StepSkew:
		return fmt.Sprintf("%s %gdeg", s.Kind, s.Angle)
	default:
		return fmt.Sprintf("%s (%g, %g, %g)", s.Kind, s.X, s.Y, s.Z)
	}
}

// Merge reads a declaration list from a file (or stdin) and prints it
// merged, one declaration per line expanded through the declaration
// template.
func Merge(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Bool("pretty") {
		env.Cfg.Output.Mode = config.OutputModePretty
	}
	if err := env.PrepareTargets(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch fname := cmd.Args().First(); fname {
	case "", "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(fname)
	}
	if err != nil {
		return fmt.Errorf("unable to read declarations: %w", err)
	}
	return mergeDeclarations(os.Stdout, env, string(data))
}

func mergeDeclarations(w io.Writer, env *state.LocalEnv, text string) error {
	log := env.Log.Named("merge")

	tmpl, err := parseTemplate(config.DeclarationTemplateFieldName, env.Cfg.Output.DeclarationTemplate)
	if err != nil {
		return err
	}

	sheet := css.NewParser(log).Parse([]byte("merge{" + text + "\n}"))
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		return errors.New("input is not a declaration list")
	}
	for _, p := range sheet.Warnings {
		log.Warn("Declaration problem", zap.String("problem", p))
	}

	merged := properties.Merge(sheet.Items[0].Rule.Declarations, env.Targets, log)
	minify := env.Cfg.Output.Mode.Minify()
	for _, p := range merged {
		value, err := p.ValueString(minify)
		if err != nil {
			return err
		}
		for _, name := range p.Names() {
			v := DeclarationValues{
				Context:   string(config.DeclarationTemplateFieldName),
				Name:      name,
				Value:     value,
				Important: p.Important,
			}
			if p.ID != properties.PropUnparsed {
				v.Prefix = strings.TrimSuffix(name, p.ID.String())
			}
			line, err := expandTemplate(tmpl, v)
			if err != nil {
				return fmt.Errorf("unable to expand declaration template: %w", err)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	log.Debug("Declarations merged", zap.Int("in", len(sheet.Items[0].Rule.Declarations)), zap.Int("out", len(merged)))
	return nil
}
