package lookup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"go.uber.org/zap"
)

const (
	PokemonFile = "pokemon_names.json"
	MoveFile    = "move_names.json"
	AbilityFile = "ability_names.json"
	ItemFile    = "item_names.json"
	TypeFile    = "type_names.json"

	// item_names.json is not split by locale.
	itemKey = "itemname"
)

var AssetFiles = []string{PokemonFile, MoveFile, AbilityFile, ItemFile, TypeFile}

type Tables struct {
	Pokemon Table
	Move    Table
	Ability Table
	Item    Table
	Type    Table
}

func LoadTables(dir, locale string) (Tables, error) {
	var tables Tables
	targets := []struct {
		file  string
		key   string
		table *Table
	}{
		{PokemonFile, locale, &tables.Pokemon},
		{MoveFile, locale, &tables.Move},
		{AbilityFile, locale, &tables.Ability},
		{ItemFile, itemKey, &tables.Item},
		{TypeFile, locale, &tables.Type},
	}
	for _, target := range targets {
		table, err := LoadTable(filepath.Join(dir, target.file), target.key)
		if err != nil {
			return Tables{}, err
		}
		*target.table = table
	}
	return tables, nil
}

// CopyAssets seeds dst with the name tables from a reference checkout.
// Files already in dst and files missing from src are left alone.
func CopyAssets(src, dst string, sugar *zap.SugaredLogger) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); err != nil {
		sugar.Infof("Asset source %s not available, using existing assets", src)
		return nil
	}
	for _, name := range AssetFiles {
		source := filepath.Join(src, name)
		dest := filepath.Join(dst, name)
		if _, err := os.Stat(source); err != nil {
			continue
		}
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := cp.Copy(source, dest); err != nil {
			return fmt.Errorf("copying %s: %w", name, err)
		}
		sugar.Infof("Copied %s", name)
	}
	return nil
}
