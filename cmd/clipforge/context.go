package main

import (
	"strings"
	"sync"

	"clipforge/internal/config"
	"clipforge/internal/editor"
	"clipforge/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withEditor opens the project for the duration of fn. Read-side commands
// still take the project lock, so a running editor blocks them.
func (c *commandContext) withEditor(fn func(*editor.Editor) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ed, err := editor.New(cfg, nil, logging.NewNop())
	if err != nil {
		return err
	}
	defer ed.Close()
	return fn(ed)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
