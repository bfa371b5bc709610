package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ID returns the variant fingerprint for a settings/options pair.
// Settings values are joined with "-", then combined with the option
// assignments using "|". Options marked ExcludeFromID do not contribute, so
// variants differing only in such options share one fingerprint.
func ID(s Settings, opts *OptionSet) string {
	parts := []string{s.OS, s.Arch, s.Compiler, s.BuildType}
	if s.CompilerVersion != "" {
		parts = append(parts, s.CompilerVersion)
	}
	settingsPart := strings.Join(parts, "-")

	var optParts []string
	for _, o := range opts.Options() {
		if o.ExcludeFromID {
			continue
		}
		v, _ := opts.Get(o.Name)
		optParts = append(optParts, o.Name+"="+v)
	}
	if len(optParts) == 0 {
		return settingsPart
	}
	return settingsPart + "|" + strings.Join(optParts, "-")
}

// ShortID returns a 12-character digest of an ID, for directory names and
// log lines where the full fingerprint is too long.
func ShortID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])[:12]
}
