package cli

import (
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// loadConfig reads the --config file, or the per-user default when the flag
// is not set. A missing default file is not an error; a missing explicit one
// is.
func (c *CLI) loadConfig(explicit bool) error {
	path := c.configPath
	if !explicit || path == "" {
		explicit = false
		p, err := config.DefaultPath()
		if err != nil {
			c.Logger.Debug("no config dir", "error", err)
			return nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeNotFound) {
			c.Logger.Debug("no config file", "path", path)
			return nil
		}
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
