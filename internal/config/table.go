package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"medchat/internal/responder"
)

// TableFile is the on-disk form of the responder table. Keyword order in the
// file is the match order.
type TableFile struct {
	Keywords    []KeywordConfig  `yaml:"keywords" toml:"keywords"`
	Emergency   *EmergencyConfig `yaml:"emergency" toml:"emergency"`
	General     *GeneralConfig   `yaml:"general" toml:"general"`
	Disclaimers []string         `yaml:"disclaimers" toml:"disclaimers"`
}

// KeywordConfig defines one keyword entry.
type KeywordConfig struct {
	Keyword     string   `yaml:"keyword" toml:"keyword"`
	Response    string   `yaml:"response" toml:"response"`
	Suggestions []string `yaml:"suggestions,omitempty" toml:"suggestions"`
	Urgency     string   `yaml:"urgency,omitempty" toml:"urgency"`       // low, medium or high
	Disclaimer  string   `yaml:"disclaimer,omitempty" toml:"disclaimer"` // Empty draws from the pool
}

// EmergencyConfig defines the emergency phrases and their fixed reply.
type EmergencyConfig struct {
	Phrases    []string `yaml:"phrases" toml:"phrases"`
	Response   string   `yaml:"response" toml:"response"`
	Disclaimer string   `yaml:"disclaimer" toml:"disclaimer"`
}

// GeneralConfig defines the fallback reply pool.
type GeneralConfig struct {
	Responses   []string `yaml:"responses" toml:"responses"`
	Suggestions []string `yaml:"suggestions" toml:"suggestions"`
}

// LoadTable reads a YAML (.yaml, .yml) or TOML (.toml) table file. An empty path
// returns the built-in table. Sections missing from the file keep their built-in
// values; sections present but empty are passed through so that responder.New
// rejects them.
func LoadTable(path string) (responder.Table, error) {
	if path == "" {
		return responder.DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return responder.Table{}, fmt.Errorf("failed to read table file: %w", err)
	}

	var file TableFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return responder.Table{}, fmt.Errorf("unsupported table file extension %q", ext)
	}
	if err != nil {
		return responder.Table{}, fmt.Errorf("failed to parse table file %s: %w", path, err)
	}

	return file.Table(), nil
}

// Table merges the file over the built-in table.
func (f *TableFile) Table() responder.Table {
	t := responder.DefaultTable()

	if f.Keywords != nil {
		t.Keywords = make([]responder.Entry, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			t.Keywords = append(t.Keywords, responder.Entry{
				Keyword:     k.Keyword,
				Response:    k.Response,
				Suggestions: k.Suggestions,
				Urgency:     responder.Urgency(k.Urgency),
				Disclaimer:  k.Disclaimer,
			})
		}
	}
	if f.Emergency != nil {
		t.Emergency = responder.Emergency{
			Phrases:    f.Emergency.Phrases,
			Response:   f.Emergency.Response,
			Disclaimer: f.Emergency.Disclaimer,
		}
	}
	if f.General != nil {
		t.General = responder.General{
			Responses:   f.General.Responses,
			Suggestions: f.General.Suggestions,
		}
	}
	if f.Disclaimers != nil {
		t.Disclaimers = f.Disclaimers
	}

	return t
}
