package config

import (
	"fmt"

	"github.com/atlanticdynamic/frontdoor/internal/fancy"
	"github.com/charmbracelet/lipgloss/tree"
)

// String returns a pretty-printed tree representation of the config
func (c *Config) String() string {
	return ConfigTree(c)
}

// ConfigTree converts a Config struct into a rendered tree string
func ConfigTree(cfg *Config) string {
	return cfg.Tree().String()
}

// Tree builds the styled tree of the config. Callers may add branches before
// rendering it.
func (c *Config) Tree() *tree.Tree {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render("Frontdoor Config"))

	listener := fancy.BranchNode("Listener", c.Address())
	listener.Child(fmt.Sprintf("Host: %s", c.Host))
	listener.Child(fmt.Sprintf("Port: %d", c.Port))
	t.Child(listener)

	logging := fancy.BranchNode("Logging", c.LogLevel.String())
	logging.Child(fmt.Sprintf("Level: %s", c.LogLevel))
	logging.Child(fmt.Sprintf("Debug: %s", fancy.BoolText(c.Debug)))
	if c.IgnoredLogLevel != "" {
		logging.Child(fmt.Sprintf("Ignored LOG_LEVEL: %q", c.IgnoredLogLevel))
	}
	t.Child(logging)

	workers := "runtime default"
	if c.Workers > 0 {
		workers = fmt.Sprintf("%d", c.Workers)
	}
	production := fancy.BranchNode("Production", "")
	production.Child(fmt.Sprintf("Workers: %s", workers))
	t.Child(production)

	return t
}
