package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plancad/internal/domain"
)

// resolveDrawingID accepts a full id, a unique id prefix or an exact
// drawing name.
func resolveDrawingID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("drawing ID is required")
	}

	drawings, err := app.Drawings.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact UUID match
	for _, d := range drawings {
		if d.ID == input {
			return d.ID, nil
		}
	}

	// 2. Exact name match (case-insensitive)
	var named []string
	for _, d := range drawings {
		if strings.EqualFold(d.Name, input) {
			named = append(named, d.ID)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return "", fmt.Errorf("drawing name %q is ambiguous (%d matches)", input, len(named))
	}

	// 3. UUID prefix match
	var matches []string
	for _, d := range drawings {
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", domain.ErrDrawingNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("drawing ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
