// Package config loads a project's config.ini into an immutable Settings value.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/foundation/normalization"
)

// FileName is the configuration file expected at the project root.
const FileName = "config.ini"

const (
	SectionGeneral    = "general"
	SectionMarkdown   = "markdown"
	SectionNavigation = "navigation"
)

// Settings is the parsed project configuration. It is built once by Load and
// passed by reference; nothing in it is mutated after loading.
type Settings struct {
	// Path is the absolute path of the loaded config file.
	Path string
	// Raw holds the config file bytes exactly as read; the project fingerprint
	// is computed over them.
	Raw []byte

	Suffix     string
	Markdown   MarkdownSettings
	Navigation []NavEntry
}

// MarkdownSettings configures the markup transform.
type MarkdownSettings struct {
	Safe   bool
	Addons []string
}

// NavEntry is one navigation link. Entries are ordered by Key; Name is the key
// with its sort prefix ("1-index" -> "index") removed.
type NavEntry struct {
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
}

var safeModeNormalizer = normalization.NewNormalizer(map[string]bool{
	"true": true,
	"yes":  true,
	"on":   true,
}, false)

// Load reads and parses root/config.ini.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, FileName)
	// #nosec G304 -- path is the project config location chosen by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "couldn't open config file - is "+root+" an sr project?").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}

	settings, err := Parse(data)
	if err != nil {
		return nil, err
	}
	settings.Path = path
	return settings, nil
}

// Parse builds Settings from raw config.ini bytes.
func Parse(data []byte) (*Settings, error) {
	// Inline comments need a leading space so navigation targets such as
	// "page.html#section" survive intact.
	file, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "malformed config file").Fatal().UserAction().Build()
	}

	general, err := file.GetSection(SectionGeneral)
	if err != nil || !general.HasKey("suffix") {
		return nil, errors.ConfigError("required configuration missing").WithContext("field", "general.suffix").Build()
	}
	suffix := general.Key("suffix").String()
	if suffix == "" {
		return nil, errors.ConfigError("page suffix must not be empty").WithContext("field", "general.suffix").Build()
	}

	settings := &Settings{
		Raw:    data,
		Suffix: suffix,
	}

	if md, err := file.GetSection(SectionMarkdown); err == nil {
		settings.Markdown.Safe = safeModeNormalizer.Normalize(md.Key("safe").String())
		settings.Markdown.Addons = splitAddons(md.Key("addons").String())
	}

	if nav, err := file.GetSection(SectionNavigation); err == nil {
		for _, key := range nav.Keys() {
			settings.Navigation = append(settings.Navigation, newNavEntry(key.Name(), key.Value()))
		}
		sort.SliceStable(settings.Navigation, func(i, j int) bool {
			return settings.Navigation[i].Key < settings.Navigation[j].Key
		})
	}

	return settings, nil
}

func splitAddons(raw string) []string {
	var addons []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			addons = append(addons, part)
		}
	}
	return addons
}

func newNavEntry(key, target string) NavEntry {
	name := key
	if _, after, ok := strings.Cut(key, "-"); ok {
		name = after
	}
	return NavEntry{Key: key, Name: name, Target: target}
}
