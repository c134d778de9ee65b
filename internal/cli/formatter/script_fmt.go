package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/domain"
)

// FormatExecuteResult renders a successful run: logs, created ids and the
// resulting drawing header.
func FormatExecuteResult(resp *contract.ExecuteResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("✔ Script ran"), Dim("in "+Duration(resp.Duration)))
	b.WriteString(formatLogs(resp.Logs))
	if len(resp.CreatedIDs) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", Bold("Created:"), strings.Join(resp.CreatedIDs, ", "))
	}
	if resp.Drawing != nil {
		b.WriteString("\n")
		b.WriteString(FormatDrawingSummary(resp.Drawing))
	}
	return b.String()
}

// FormatScriptFailure renders a failed run with the offending source line.
func FormatScriptFailure(src string, resp *contract.ExecuteResponse) string {
	var b strings.Builder
	b.WriteString(FormatScriptError(src, resp.Error))
	b.WriteString(formatLogs(resp.Logs))
	return b.String()
}

// FormatScriptError renders a script error badge, message and, when the line
// is known, the source line with a caret under the column.
func FormatScriptError(src string, se *domain.ScriptError) string {
	if se == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ErrorKindBadge(se.Kind), se.Message)

	lines := strings.Split(src, "\n")
	if se.Line > 0 && se.Line <= len(lines) {
		gutter := fmt.Sprintf("%4d │ ", se.Line)
		fmt.Fprintf(&b, "%s%s\n", Dim(gutter), lines[se.Line-1])
		if se.Column > 0 {
			pad := strings.Repeat(" ", len([]rune(gutter))+se.Column-1)
			b.WriteString(pad + ErrorKindColor(se.Kind).Render("^") + "\n")
		}
	}
	if se.Details != "" {
		fmt.Fprintf(&b, "  %s\n", Dim(se.Details))
	}
	return b.String()
}

// FormatValidation renders the result of a validate call.
func FormatValidation(src string, resp *contract.ValidateResponse) string {
	if resp.Valid {
		return StyleGreen.Render("✔ Script is valid") + "\n"
	}
	return FormatScriptError(src, resp.Error)
}

func formatLogs(logs []string) string {
	if len(logs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + Bold("Output:") + "\n")
	for _, l := range logs {
		b.WriteString("  " + StyleFg.Render(l) + "\n")
	}
	return b.String()
}

// FormatCommandCatalog lists every script function grouped by category.
func FormatCommandCatalog(specs []command.Spec) string {
	groups := lo.GroupBy(specs, func(s command.Spec) command.Category { return s.Category })
	order := []command.Category{
		command.CategoryDrawing,
		command.CategoryEditing,
		command.CategoryCalculation,
		command.CategoryFile,
	}

	var b strings.Builder
	for _, cat := range order {
		group, ok := groups[cat]
		if !ok {
			continue
		}
		b.WriteString(Header(string(cat)))
		b.WriteString("\n")
		rows := lo.Map(group, func(s command.Spec, _ int) []string {
			return []string{StyleBlue.Render("cad." + s.Function), Signature(s), s.Description}
		})
		b.WriteString(RenderTable([]string{"FUNCTION", "PARAMETERS", "DESCRIPTION"}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

// Signature renders a parameter list with "?" marking optional parameters.
func Signature(s command.Spec) string {
	parts := lo.Map(s.Parameters, func(p command.Parameter, _ int) string {
		name := p.Name
		if p.Repeated {
			name += "[]"
		}
		if !p.Required {
			name += "?"
		}
		return name
	})
	return strings.Join(parts, ", ")
}

// FormatHistory renders a drawing's script runs, newest first.
func FormatHistory(runs []contract.ScriptRunView, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No scripts have run against this drawing.") + "\n"
	}
	rows := lo.Map(runs, func(r contract.ScriptRunView, _ int) []string {
		status := StyleGreen.Render("✔ ok")
		if !r.Success {
			status = ErrorKindBadge(r.ErrorType)
			if r.ErrorLine > 0 {
				status += Dim(fmt.Sprintf(" line %d", r.ErrorLine))
			}
		}
		return []string{
			HumanTimestampFrom(r.CreatedAt, now),
			status,
			fmt.Sprintf("%d", r.CreatedIDs),
			Duration(time.Duration(r.DurationMs) * time.Millisecond),
			firstLine(r.Script),
		}
	})
	return RenderTable([]string{"WHEN", "RESULT", "CREATED", "TIME", "SCRIPT"}, rows)
}

// FormatDraft renders a drafted script, its explanation and whether it
// passed the checks.
func FormatDraft(resp *contract.DraftScriptResponse) string {
	var b strings.Builder
	status := StyleGreen.Render("✔ valid")
	if !resp.Valid {
		status = StyleRed.Render("✖ invalid")
	}
	meta := fmt.Sprintf("%s  %s", status,
		Dim(fmt.Sprintf("confidence %.0f%% · %d attempt(s)", resp.Confidence*100, resp.Attempts)))
	b.WriteString(RenderBox("Drafted script", strings.TrimRight(resp.Script, "\n")))
	b.WriteString("\n" + meta + "\n")
	if resp.Explanation != "" {
		b.WriteString(Dim(resp.Explanation) + "\n")
	}
	if resp.Error != nil {
		b.WriteString(FormatScriptError(resp.Script, resp.Error))
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	line, _, cut := strings.Cut(s, "\n")
	if len(line) > 48 {
		return line[:47] + "…"
	}
	if cut {
		return line + " …"
	}
	return line
}
