// Package process runs the minifier over files, directories and zip
// archives and implements the value inspection commands.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cssmin/archive"
	"cssmin/config"
	"cssmin/css"
	"cssmin/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("minify")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.Diff = cmd.Bool("overwrite"), cmd.Bool("diff")
	if cmd.Bool("pretty") {
		env.Cfg.Output.Mode = config.OutputModePretty
	}
	if err := env.PrepareTargets(); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", env.Cfg.Output.Mode))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return Process(ctx, env, src, dst)
}

// Process minifies every stylesheet found at src into dst. Src is a
// stylesheet, a directory or a zip archive, optionally followed by a path
// inside the archive. Failures of single stylesheets do not stop
// processing and are returned combined.
func Process(ctx context.Context, env *state.LocalEnv, src, dst string) error {
	r, err := newRunner(ctx, env, dst)
	if err != nil {
		return err
	}

	head, tail, err := locate(src)
	if err != nil {
		return err
	}
	fi, err := os.Stat(head)
	if err != nil {
		return err
	}

	switch {
	case fi.IsDir():
		if tail != "" {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, tail)
		}
		err = archive.WalkDir(r.ctx, head, r.submit)
	case !fi.Mode().IsRegular():
		return fmt.Errorf("unexpected path mode for (%s)", head)
	default:
		var isZip bool
		if isZip, err = isArchiveFile(head); err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		switch {
		case isZip:
			err = archive.WalkZip(r.ctx, head, tail, r.submit)
		case tail != "":
			return fmt.Errorf("input source was not found (%s) => (%s)", head, tail)
		default:
			var data []byte
			if data, err = os.ReadFile(head); err == nil {
				err = r.submit(filepath.Base(head), data)
			}
		}
	}
	return r.wait(err)
}

// locate splits src into the longest existing path and the rest, which
// can only be a path inside an archive.
func locate(src string) (string, string, error) {
	head, tail := filepath.Clean(src), ""
	for {
		if _, err := os.Stat(head); err == nil {
			return head, filepath.ToSlash(tail), nil
		}
		dir, file := filepath.Split(head)
		dir = strings.TrimSuffix(dir, string(filepath.Separator))
		if file == "" || dir == "" || dir == head {
			return "", "", fmt.Errorf("input source was not found (%s)", src)
		}
		head, tail = dir, filepath.Join(file, tail)
	}
}

type runner struct {
	ctx      context.Context
	env      *state.LocalEnv
	log      *zap.Logger
	parser   *css.Parser
	nameTmpl *template.Template
	dst      string
	g        *errgroup.Group

	mu    sync.Mutex
	errs  error
	count int
}

func newRunner(ctx context.Context, env *state.LocalEnv, dst string) (*runner, error) {
	tmpl, err := parseTemplate(config.NameTemplateFieldName, env.Cfg.Output.NameTemplate)
	if err != nil {
		return nil, err
	}
	workers := env.Cfg.Minify.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	r := &runner{
		env:      env,
		log:      env.Log.Named("minify"),
		parser:   css.NewParser(env.Log, css.WithValueCache(env.Cfg.Minify.CacheSize)),
		nameTmpl: tmpl,
		dst:      dst,
	}
	r.g, r.ctx = errgroup.WithContext(ctx)
	r.g.SetLimit(workers)
	return r, nil
}

// submit queues one stylesheet, blocking while all workers are busy.
func (r *runner) submit(name string, data []byte) error {
	r.count++
	r.g.Go(func() error {
		if err := r.processStylesheet(name, data); err != nil {
			r.log.Error("Unable to process stylesheet", zap.String("file", name), zap.Error(err))
			r.mu.Lock()
			r.errs = multierr.Append(r.errs, fmt.Errorf("%s: %w", name, err))
			r.mu.Unlock()
		}
		return nil
	})
	return nil
}

func (r *runner) wait(walkErr error) error {
	_ = r.g.Wait()
	if walkErr == nil && r.count == 0 {
		r.log.Info("Nothing to process")
	}
	return multierr.Append(walkErr, r.errs)
}

func (r *runner) processStylesheet(name string, data []byte) (rerr error) {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	var outputName string
	defer func(start time.Time) {
		if p := recover(); p != nil {
			r.log.Error("Processing ended with panic",
				zap.Any("panic", p), zap.String("from", name), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic: %v", p)
			return
		}
		if rerr == nil {
			r.log.Debug("Stylesheet processed", zap.String("from", name), zap.String("to", outputName), zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	isZip, err := Detect(data)
	if err != nil {
		return err
	}
	if isZip {
		return errors.New("archives inside archives are not supported")
	}

	text, charset, err := Decode(data)
	if err != nil {
		r.log.Warn("Charset ignored", zap.String("file", name), zap.String("charset", charset), zap.Error(err))
	}

	sheet := r.parser.Parse(text, name)
	for _, w := range sheet.Warnings {
		r.log.Warn("Stylesheet problem", zap.String("file", name), zap.String("problem", w))
	}
	normalizeCharset(sheet)

	cfg := r.env.Cfg
	if cfg.Minify.Enabled {
		opts := css.MinifyOptions{Targets: r.env.Targets, Workers: cfg.Minify.Workers}
		if err := sheet.Minify(r.ctx, opts, r.log); err != nil {
			return err
		}
	}

	if outputName, err = buildOutputPath(r.nameTmpl, name, r.dst, cfg.Output.Mode); err != nil {
		return fmt.Errorf("unable to prepare output name: %w", err)
	}
	if err := r.prepareDestination(outputName); err != nil {
		return err
	}

	var out bytes.Buffer
	if _, err := sheet.Print(&out, cfg.Output.Mode.Minify()); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	r.log.Info("Stylesheet written", zap.String("from", name), zap.String("to", outputName),
		zap.Int("in", len(data)), zap.Int("out", out.Len()))

	if r.env.Diff {
		if err := writePatch(outputName+".patch", string(text), out.String()); err != nil {
			return err
		}
	}
	r.env.Rpt.StoreData("source/"+name, data)
	r.env.Rpt.Store("result/"+name, outputName)
	return nil
}

func (r *runner) prepareDestination(outputName string) error {
	_, err := os.Stat(outputName)
	switch {
	case err == nil:
		if !r.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		r.log.Warn("Overwriting existing file", zap.String("file", outputName))
		return nil
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// normalizeCharset rewrites @charset after input was decoded to UTF-8.
func normalizeCharset(sheet *css.Stylesheet) {
	for _, item := range sheet.Items {
		if st := item.Statement; st != nil && st.Name == "charset" {
			st.Prelude = `"utf-8"`
		}
	}
}

// writePatch stores the difference between source and output as a patch
// in diff-match-patch text format.
func writePatch(name, src, out string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(src, out, false)
	diffs = dmp.DiffCleanupEfficiency(diffs)
	patch := dmp.PatchToText(dmp.PatchMake(src, diffs))
	if err := os.WriteFile(name, []byte(patch), 0644); err != nil {
		return fmt.Errorf("unable to write patch: %w", err)
	}
	return nil
}
