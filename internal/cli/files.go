package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
)

// readScript loads a script from path, or from stdin when path is "-".
func readScript(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading script from stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return string(b), nil
}

// formatFor picks the snapshot format from an explicit flag value or the
// file extension.
func formatFor(path, explicit string) (drawing.Format, error) {
	if explicit != "" {
		return drawing.ParseFormat(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return drawing.FormatYAML, nil
	default:
		return drawing.FormatJSON, nil
	}
}

func readDrawingFile(path, format string) (*domain.Drawing, error) {
	f, err := formatFor(path, format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drawing: %w", err)
	}
	return drawing.Unmarshal(data, f)
}

func writeDrawingFile(path, format string, d *domain.Drawing) error {
	f, err := formatFor(path, format)
	if err != nil {
		return err
	}
	data, err := drawing.Marshal(d, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal it refuses unless force is set.
func confirmOverwrite(cmd *cobra.Command, app *App, path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("refusing to overwrite %s (use --force)", path)
	}
	if !promptYesNoIO(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Overwrite %s? [y/N]: ", path)) {
		return fmt.Errorf("not overwriting %s", path)
	}
	return nil
}

// parseVars turns repeated key=value flags into script variables. Values
// that parse as JSON keep their type; anything else is a string.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q (want key=value)", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		vars[key] = v
	}
	return vars, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
