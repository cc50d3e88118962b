package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "input.css")
	if err := os.WriteFile(stored, []byte("a{color:red}"), 0644); err != nil {
		t.Fatal(err)
	}
	rpt.Store("input.css", stored)
	rpt.Store("absent.css", filepath.Join(dir, "absent.css"))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rpt.StoreData("config.yaml", []byte("version: 1\n"))
		}()
	}
	wg.Wait()

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if rpt.Name() == "" {
		t.Error("Name() is empty")
	}

	files := readArchive(t, conf.Destination)
	if files["input.css"] != "a{color:red}" {
		t.Errorf("input.css = %q", files["input.css"])
	}
	if _, ok := files["absent.css"]; ok {
		t.Error("absent file should be skipped")
	}
	var configs int
	for name, data := range files {
		if strings.HasPrefix(name, "config.yaml") {
			configs++
			if data != "version: 1\n" {
				t.Errorf("%s = %q", name, data)
			}
		}
	}
	if configs != 8 {
		t.Errorf("found %d config entries, want 8", configs)
	}
	if !strings.Contains(files["MANIFEST"], "input.css") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReport_Nil(t *testing.T) {
	var rpt *Report
	rpt.Store("a", "b")
	rpt.StoreData("a", nil)
	if rpt.Name() != "" {
		t.Error("nil report has a name")
	}
	if err := rpt.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestReport_StoreConflict(t *testing.T) {
	rpt := &Report{entries: make(map[string]entry)}
	rpt.Store("log", "one.log")
	rpt.Store("log", "one.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	rpt.Store("log", "two.log")
}
