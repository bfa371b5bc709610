package gmp

import (
	_ "embed"
	"fmt"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/llarhub/gmp/internal/fetch"
)

//go:embed sources.yml
var sourcesYAML []byte

type sourceData struct {
	Sources map[string]fetch.Source `yaml:"sources"`
}

// Sources returns the known upstream releases: version to download info.
func Sources() (map[string]fetch.Source, error) {
	var data sourceData
	if err := yaml.Unmarshal(sourcesYAML, &data); err != nil {
		return nil, fmt.Errorf("parse sources.yml: %w", err)
	}
	return data.Sources, nil
}

// SourceFor resolves a version string to its download info. An empty version
// selects the latest known release. The resolved version is returned.
func SourceFor(version string) (fetch.Source, string, error) {
	sources, err := Sources()
	if err != nil {
		return fetch.Source{}, "", err
	}
	if version == "" {
		version = latestVersion(sources)
	}
	src, ok := sources[version]
	if !ok {
		return fetch.Source{}, "", fmt.Errorf("unknown gmp version %q", version)
	}
	return src, version, nil
}

// latestVersion picks the highest version by semver ordering.
func latestVersion(sources map[string]fetch.Source) string {
	var latest string
	for v := range sources {
		if latest == "" || semver.Compare("v"+v, "v"+latest) > 0 {
			latest = v
		}
	}
	return latest
}
