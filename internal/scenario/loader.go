package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a YAML file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	return decode[T](filename, content)
}

// LoadFile reads and unmarshals a YAML file from disk.
func LoadFile[T any](path string) (T, error) {
	var result T

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode[T](path, content)
}

// MustLoad reads and unmarshals an embedded YAML file, panicking on error.
// Use this for data that must be present for the simulator to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// decode rejects unknown keys so typos in scenario files surface early.
func decode[T any](name string, content []byte) (T, error) {
	var result T

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("failed to parse YAML from %s: %w", name, err)
	}
	return result, nil
}
