package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/properties"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}

// PrepareTargets resolves configured browser targets against the embedded
// prefix table. No targets leaves prefix expansion disabled.
func (e *LocalEnv) PrepareTargets() error {
	e.Targets = properties.Targets{}
	if e.Cfg == nil || len(e.Cfg.Targets) == 0 {
		return nil
	}
	browsers, err := prefixes.ParseBrowsers(e.Cfg.Targets)
	if err != nil {
		return fmt.Errorf("bad targets: %w", err)
	}
	table, err := prefixes.DefaultTable()
	if err != nil {
		return fmt.Errorf("unable to load prefix table: %w", err)
	}
	e.Targets = properties.Targets{Browsers: browsers, Resolver: table}
	e.Log.Debug("Prefix targets", zap.Stringer("browsers", browsers))
	return nil
}
