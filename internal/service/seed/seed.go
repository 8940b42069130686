// Package seed reads the catalog seed file used by the migrator.
package seed

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"skinshop/domain"
)

// maxNameLength matches the varchar(100) name column, counted in characters.
const maxNameLength = 100

type File struct {
	Skins []Skin `yaml:"skins"`
}

type Skin struct {
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

func Load(path string) ([]domain.Skin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed document. Every entry needs a name and a non-negative price.
func Parse(r io.Reader) ([]domain.Skin, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}

	skins := make([]domain.Skin, 0, len(file.Skins))
	for i, s := range file.Skins {
		if s.Name == "" {
			return nil, fmt.Errorf("seed: entry %d has no name", i)
		}
		if utf8.RuneCountInString(s.Name) > maxNameLength {
			return nil, fmt.Errorf("seed: entry %d name is too long", i)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("seed: entry %d (%s) has negative price", i, s.Name)
		}
		skins = append(skins, domain.Skin{Name: s.Name, Price: s.Price})
	}
	return skins, nil
}
