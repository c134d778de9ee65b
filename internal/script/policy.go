package script

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/plancad/internal/domain"
)

// MaxScriptBytes bounds the size of an accepted script.
const MaxScriptBytes = 64 << 10

var disallowed = []*regexp.Regexp{
	regexp.MustCompile(`\bimport\s+os\b`),
	regexp.MustCompile(`\bimport\s+subprocess\b`),
	regexp.MustCompile(`\bimport\s+sys\b`),
	regexp.MustCompile(`\bexec\s*\(`),
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`__import__`),
	regexp.MustCompile(`\bopen\s*\(`),
	regexp.MustCompile(`\bfile\s*\(`),
}

// CheckPolicy rejects scripts before any interpretation: empty or oversized
// scripts and scripts that attempt file or system access.
func CheckPolicy(src string) error {
	if strings.TrimSpace(src) == "" {
		return domain.NewValidationError(0, "Script cannot be empty")
	}
	if len(src) > MaxScriptBytes {
		return domain.NewValidationError(0, "Script exceeds %d bytes", MaxScriptBytes)
	}

	for i, line := range strings.Split(src, "\n") {
		for _, re := range disallowed {
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			return &domain.ScriptError{
				Kind:    domain.ErrorValidation,
				Message: "Script contains potentially dangerous operations",
				Line:    i + 1,
				Column:  loc[0] + 1,
				Details: "File operations and system imports are not allowed: " + line[loc[0]:loc[1]],
			}
		}
	}
	return nil
}
