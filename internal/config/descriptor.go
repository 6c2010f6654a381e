// Package config loads a project descriptor: the name, output path,
// top-level implementation selection, sugaring flag, and source file list
// that together tell the compiler what to build and where to write it.
package config

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Descriptor is the project configuration, loadable from a YAML file and
// then overridden field-by-field by CLI flags (§6.2).
type Descriptor struct {
	Name                          string   `yaml:"name"`
	Output                        string   `yaml:"output"`
	TopLevelImplementation        string   `yaml:"top_level_implementation"`
	TopLevelImplementationPackage string   `yaml:"top_level_implementation_package"`
	Sugaring                      bool     `yaml:"sugaring"`
	Source                        []string `yaml:"source"`
}

// Load reads and parses a YAML descriptor file from fs at path.
func Load(fs afero.Fs, path string) (*Descriptor, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "config: failed to read %q", path)
	}
	d := &Descriptor{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, errwrap.Wrapf(err, "config: failed to parse %q", path)
	}
	return d, nil
}

// Override applies any non-zero-value CLI overrides onto d, in place. An
// empty string or nil slice in an override field means "not specified on
// the command line", not "clear this field" — flags only ever add to or
// replace what the config file set, per §6.2. sugaring is a plain bool
// rather than a pointer since it's a `--sugaring` on/off flag with no
// "unset" state of its own: passing false never turns off a config file's
// `sugaring: true`, only passing true can turn it on.
func (d *Descriptor) Override(name, output, topLevelImpl, topLevelPkg string, sugaring bool, sources []string) {
	if name != "" {
		d.Name = name
	}
	if output != "" {
		d.Output = output
	}
	if topLevelImpl != "" {
		d.TopLevelImplementation = topLevelImpl
	}
	if topLevelPkg != "" {
		d.TopLevelImplementationPackage = topLevelPkg
	}
	if sugaring {
		d.Sugaring = true
	}
	if len(sources) > 0 {
		d.Source = append(d.Source, sources...)
	}
}

// LoadSources reads every file named in d.Source from fs, keyed by path —
// the shape lang/parser.ParseProject expects.
func (d *Descriptor) LoadSources(fs afero.Fs) (map[string]string, error) {
	out := make(map[string]string, len(d.Source))
	for _, path := range d.Source {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errwrap.Wrapf(err, "config: failed to read source %q", path)
		}
		out[path] = string(data)
	}
	return out, nil
}
