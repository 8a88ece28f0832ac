package xlformula

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadTemplates decodes a JSON object of template overrides, keyed by the
// TemplateConfig JSON names, onto DefaultTemplates. Keys that are absent
// keep their default; keys that are present replace it, even with "".
func ReadTemplates(r io.Reader) (TemplateConfig, error) {
	cfg := DefaultTemplates()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("read templates: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return DefaultTemplates(), NewConfigError("invalid templates: %v", err)
	}
	if dec.More() {
		return DefaultTemplates(), NewConfigError("invalid templates: trailing data after object")
	}
	return cfg, nil
}

// LoadTemplates reads template overrides from a JSON file.
func LoadTemplates(path string) (TemplateConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultTemplates(), err
	}
	defer f.Close()
	cfg, err := ReadTemplates(f)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
