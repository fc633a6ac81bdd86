package config

import (
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Defaults used when scaffolding a new project.
const (
	DefaultSuffix   = ".txt"
	DefaultTemplate = "standard.html"
)

// DefaultNavigation is the navigation section written for new projects.
var DefaultNavigation = []NavEntry{{Key: "1-index", Name: "index", Target: "index.html"}}

// WriteDefault writes a fresh config.ini for a new project to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	file := ini.Empty()
	entries := []defaultEntry{
		{SectionGeneral, "suffix", DefaultSuffix},
		{SectionMarkdown, "safe", strconv.FormatBool(false)},
		{SectionMarkdown, "addons", ""},
	}
	for _, nav := range DefaultNavigation {
		entries = append(entries, defaultEntry{SectionNavigation, nav.Key, nav.Target})
	}
	for _, e := range entries {
		sec, err := file.NewSection(e.section)
		if err == nil {
			_, err = sec.NewKey(e.key, e.value)
		}
		if err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "build default configuration").Fatal().Build()
		}
	}

	if err := file.SaveTo(path); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to write config file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

type defaultEntry struct {
	section, key, value string
}
