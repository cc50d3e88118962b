package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssmin/config"
	"cssmin/prefixes"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("default logger not set")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Second)}
	if up := env.Uptime(); up < time.Second {
		t.Errorf("Uptime() = %v, expected at least 1s", up)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
			if env.restoreStdLog != nil {
				t.Errorf("Iteration %d: restoreStdLog not cleared", i)
			}
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_PrepareTargets(t *testing.T) {
	tests := []struct {
		name     string
		targets  map[string]string
		wantErr  bool
		disabled bool
	}{
		{name: "none", disabled: true},
		{name: "valid", targets: map[string]string{"safari": "8", "ie": "9"}},
		{name: "unknown browser", targets: map[string]string{"netscape": "4"}, wantErr: true},
		{name: "bad version", targets: map[string]string{"chrome": "latest"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newLocalEnv()
			env.Cfg = &config.Config{Version: 1, Targets: tt.targets}

			err := env.PrepareTargets()
			if (err != nil) != tt.wantErr {
				t.Fatalf("PrepareTargets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := env.Targets.Resolver == nil; got != tt.disabled {
				t.Errorf("targets disabled = %v, want %v", got, tt.disabled)
			}
			if !tt.disabled {
				vp := env.Targets.Resolve(prefixes.Transform, prefixes.None)
				if !vp.Contains(prefixes.WebKit) || !vp.Contains(prefixes.Ms) || !vp.Contains(prefixes.None) {
					t.Errorf("Resolve(transform) = %v", vp)
				}
			}
		})
	}
}
