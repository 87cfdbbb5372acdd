package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteDir string `name:"site-dir" short:"d" help:"Override site_dir" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, b.SiteDir)
	if err != nil {
		return err
	}
	_, err = RunBuild(g.Context, g, cfg)
	return err
}

// loadConfig loads the config file and applies a site_dir override.
func loadConfig(path, siteDir string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if siteDir == "" {
		return cfg, nil
	}
	if cfg.SiteDir, err = filepath.Abs(siteDir); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
