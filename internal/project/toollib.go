package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/pathcut/internal/model"
)

// DefaultToolLibPath returns the default file path for the tool library.
// This is located at ~/.pathcut/tools.json.
func DefaultToolLibPath() string {
	return filepath.Join(DefaultConfigDir(), "tools.json")
}

// SaveToolLibrary writes the tool library to a JSON file.
func SaveToolLibrary(path string, tools []model.LibraryTool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tools, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadToolLibrary reads the tool library from a JSON file.
// If the file does not exist, returns an empty library.
func LoadToolLibrary(path string) ([]model.LibraryTool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.LibraryTool{}, nil
		}
		return nil, err
	}
	var tools []model.LibraryTool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}
