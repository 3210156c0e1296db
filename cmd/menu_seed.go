package cmd

import (
	"bytes"
	"fmt"
	"os"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"

	"gopkg.in/yaml.v3"
)

type menuSeedFile struct {
	Items []menuSeedItem `yaml:"items"`
}

type menuSeedItem struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// LoadMenuSeed reads the default menu from a YAML file of the form
//
//	items:
//	  - name: Tea
//	    price: 20
func LoadMenuSeed(path string) ([]commands.SeedMenuEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu seed: %w", err)
	}
	return ParseMenuSeed(data)
}

func ParseMenuSeed(data []byte) ([]commands.SeedMenuEntry, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file menuSeedFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse menu seed: %w", err)
	}

	entries := make([]commands.SeedMenuEntry, 0, len(file.Items))
	for idx, item := range file.Items {
		price, err := kernel.MoneyFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("menu seed item %d (%q): %w", idx, item.Name, err)
		}
		entries = append(entries, commands.SeedMenuEntry{Name: item.Name, Price: price})
	}
	return entries, nil
}
