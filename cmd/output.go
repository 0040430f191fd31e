package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/phase0/internal/config"
)

// writeFields prints a flat field map for a template engine.
func writeFields(w io.Writer, fields map[string]string, format string) error {
	switch format {
	case config.FormatTOML:
		data, err := toml.Marshal(fields)
		if err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case config.FormatEnv:
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s=%q\n", k, fields[k]); err != nil {
				return err
			}
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}
}
