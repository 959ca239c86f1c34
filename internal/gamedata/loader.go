package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	return LoadFS[T](dataFS, filename)
}

// LoadFile reads and unmarshals a JSON file from disk, for overriding the
// embedded defaults.
func LoadFile[T any](path string) (T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode[T](content, path)
}

// LoadFS reads and unmarshals a JSON file from fsys.
func LoadFS[T any](fsys fs.FS, filename string) (T, error) {
	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return decode[T](content, filename)
}

func decode[T any](content []byte, name string) (T, error) {
	var result T
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", name, err)
	}
	return result, nil
}

// MustLoad reads and unmarshals an embedded JSON file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
