package misc_test

import (
	"testing"

	"cssmin/misc"
)

func TestIdentity(t *testing.T) {
	if misc.GetAppName() != "cssmin" {
		t.Errorf("GetAppName() = %q", misc.GetAppName())
	}
	if misc.GetVersion() == "" {
		t.Error("GetVersion() is empty")
	}
	if h := misc.GetGitHash(); h == "" || len(h) > 12 {
		t.Errorf("GetGitHash() = %q", h)
	}
}
