package process

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssmin/config"
	"cssmin/state"
)

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zap.NewNop()
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(data)
}

const corners = `a { border-top-left-radius: 2px; border-top-right-radius: 2px;
  border-bottom-right-radius: 2px; border-bottom-left-radius: 2px }`

func TestProcess_File(t *testing.T) {
	env := testEnv(t)
	src := filepath.Join(t.TempDir(), "a.css")
	dst := t.TempDir()
	writeFile(t, src, corners)

	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out := filepath.Join(dst, "a.min.css")
	if got := readFile(t, out); got != "a{border-radius:2px}" {
		t.Errorf("output = %q", got)
	}

	err := Process(context.Background(), env, src, dst)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Process() error = %v, want already exists", err)
	}

	env.Overwrite = true
	env.Cfg.Output.Mode = config.OutputModePretty
	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatalf("Process() with overwrite error = %v", err)
	}
	if got := readFile(t, out); got != "a {\n  border-radius: 2px;\n}\n" {
		t.Errorf("pretty output = %q", got)
	}
}

func TestProcess_MinifyDisabled(t *testing.T) {
	env := testEnv(t)
	env.Cfg.Minify.Enabled = false
	src := filepath.Join(t.TempDir(), "a.css")
	dst := t.TempDir()
	writeFile(t, src, `a { border-top-left-radius: 2px; border-top-right-radius: 2px }`)

	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatal(err)
	}
	want := "a{border-top-left-radius:2px;border-top-right-radius:2px}"
	if got := readFile(t, filepath.Join(dst, "a.min.css")); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestProcess_Directory(t *testing.T) {
	env := testEnv(t)
	env.Cfg.Minify.Workers = 2
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "x.css"), corners)
	writeFile(t, filepath.Join(src, "sub", "y.css"), `b { outline-style: solid; outline-width: thin; outline-color: #ff0000 }`)
	writeFile(t, filepath.Join(src, "notes.txt"), "not a stylesheet")

	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "x.min.css")); got != "a{border-radius:2px}" {
		t.Errorf("x.min.css = %q", got)
	}
	if got := readFile(t, filepath.Join(dst, "sub", "y.min.css")); got != "b{outline:thin solid #f00}" {
		t.Errorf("sub/y.min.css = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.min.txt")); err == nil {
		t.Error("non stylesheet was processed")
	}
}

func TestProcess_Archive(t *testing.T) {
	env := testEnv(t)
	dir, dst := t.TempDir(), t.TempDir()
	zipPath := filepath.Join(dir, "themes.zip")

	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zf)
	for name, content := range map[string]string{
		"css/a.css":   corners,
		"css/b.css":   `p { transform: translate(10px, 0px) }`,
		"other/c.css": `q { color: red }`,
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	zf.Close()

	if err := Process(context.Background(), env, filepath.Join(zipPath, "css"), dst); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "css", "a.min.css")); got != "a{border-radius:2px}" {
		t.Errorf("a.min.css = %q", got)
	}
	if got := readFile(t, filepath.Join(dst, "css", "b.min.css")); got != "p{transform:translate(10px)}" {
		t.Errorf("b.min.css = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "other")); err == nil {
		t.Error("files outside of requested archive path were processed")
	}
}

func TestProcess_Failures(t *testing.T) {
	env := testEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	writeFile(t, filepath.Join(src, "bad.css"), png)
	writeFile(t, filepath.Join(src, "good.css"), `a { color: red }`)

	err := Process(context.Background(), env, src, dst)
	if err == nil {
		t.Fatal("expected error for binary input")
	}
	if errs := multierr.Errors(err); len(errs) != 1 || !errors.Is(errs[0], ErrBinary) || !strings.Contains(errs[0].Error(), "bad.css") {
		t.Errorf("errors = %v", errs)
	}
	if got := readFile(t, filepath.Join(dst, "good.min.css")); got != "a{color:red}" {
		t.Errorf("good.min.css = %q", got)
	}
}

func TestProcess_TargetsAndDiff(t *testing.T) {
	env := testEnv(t)
	env.Cfg.Targets = map[string]string{"safari": "8"}
	env.Diff = true
	if err := env.PrepareTargets(); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "t.css")
	dst := t.TempDir()
	writeFile(t, src, `.t { transform: scale(2) }`)

	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dst, "t.min.css")); got != ".t{-webkit-transform:scale(2);transform:scale(2)}" {
		t.Errorf("output = %q", got)
	}
	if patch := readFile(t, filepath.Join(dst, "t.min.css.patch")); !strings.HasPrefix(patch, "@@ ") {
		t.Errorf("patch = %q", patch)
	}
}

func TestProcess_Charset(t *testing.T) {
	env := testEnv(t)
	src := filepath.Join(t.TempDir(), "ru.css")
	dst := t.TempDir()
	writeFile(t, src, "@charset \"windows-1251\";\na { content: \"\xcf\" }")

	if err := Process(context.Background(), env, src, dst); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dst, "ru.min.css")); got != `@charset "utf-8";a{content:"П"}` {
		t.Errorf("output = %q", got)
	}
}

func TestProcess_NotFound(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	tests := []string{
		filepath.Join(dir, "absent", "a.css"),
		filepath.Join(dir, "a.css", "inner.css"),
	}
	writeFile(t, filepath.Join(dir, "a.css"), "a{}")
	for _, src := range tests {
		if err := Process(context.Background(), env, src, t.TempDir()); err == nil {
			t.Errorf("Process(%s) expected error", src)
		}
	}
}

func TestProcess_Canceled(t *testing.T) {
	env := testEnv(t)
	src := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, src, corners)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Process(ctx, env, src, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Process() error = %v, want context.Canceled", err)
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "a.zip")
	writeFile(t, zipPath, "x")

	head, tail, err := locate(filepath.Join(zipPath, "inner", "x.css"))
	if err != nil {
		t.Fatal(err)
	}
	if head != zipPath || tail != "inner/x.css" {
		t.Errorf("locate() = %q, %q", head, tail)
	}

	head, tail, err = locate(dir)
	if err != nil || head != dir || tail != "" {
		t.Errorf("locate(dir) = %q, %q, %v", head, tail, err)
	}
}
