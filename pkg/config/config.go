// Package config loads a per-target emission manifest — quote style, the
// `new` keyword, octal prefix, boolean/null spelling, and the regex flag
// tables — the same role pkg/driver/manifest.go plays for package.yml in
// the teacher, scaled down to what pkg/emit's data-driven half needs.
// Python and Java manifests ship embedded and load through Load; LoadFile
// reads a filesystem path so a caller can add a target without recompiling
// this package, as
// long as the new target only needs the data-driven parts and not a
// bespoke pkg/emit hook.
package config

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed python.yaml java.yaml
var embedded embed.FS

// Manifest is the parsed contents of one target's YAML manifest.
type Manifest struct {
	Language         string            `yaml:"language"`
	Quote            string            `yaml:"quote"`
	NewKeyword       string            `yaml:"new_keyword"`
	OctalPrefix      string            `yaml:"octal_prefix"`
	BooleanTrue      string            `yaml:"boolean_true"`
	BooleanFalse     string            `yaml:"boolean_false"`
	NullLiteral      string            `yaml:"null_literal"`
	UndefinedLiteral string            `yaml:"undefined_literal"`
	RegexFlags       map[string]string `yaml:"regex_flags"`
	BSONRegexFlags   []string          `yaml:"bson_regex_flags"`
}

// ValidationError aggregates every problem found with a manifest, matching
// the teacher's own manifest.ValidationError shape.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid manifest"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load loads the built-in manifest for name ("python" or "java"). Callers
// wanting a custom target manifest use LoadFile instead.
func Load(name string) (*Manifest, error) {
	f, err := embedded.Open(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("config: no built-in manifest for %q", name)
	}
	defer f.Close()
	return decode(f, name+".yaml (embedded)")
}

// LoadFile loads a manifest from an arbitrary filesystem path, for a caller
// adding a target without recompiling this package.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f, path)
}

func decode(r io.Reader, source string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Language == "" {
		errs.Issues = append(errs.Issues, "language must be provided")
	}
	if m.Quote == "" {
		errs.Issues = append(errs.Issues, "quote must be provided")
	}
	if m.BooleanTrue == "" || m.BooleanFalse == "" {
		errs.Issues = append(errs.Issues, "boolean_true and boolean_false must both be provided")
	}
	if m.OctalPrefix == "" {
		errs.Issues = append(errs.Issues, "octal_prefix must be provided")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// TranslateFlag maps a single JavaScript regex flag letter to this
// manifest's target spelling. ok is false when the flag has no
// counterpart and should be dropped, per spec.md §4.3's regex flag table.
func (m *Manifest) TranslateFlag(jsFlag string) (target string, ok bool) {
	target, ok = m.RegexFlags[jsFlag]
	return target, ok
}

// AllowsBSONRegexFlag reports whether flag is one of the target-independent
// BSON regex flags spec.md §4.3 says both targets accept unchanged.
func (m *Manifest) AllowsBSONRegexFlag(flag string) bool {
	for _, f := range m.BSONRegexFlags {
		if f == flag {
			return true
		}
	}
	return false
}
