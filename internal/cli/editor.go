package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/domain"
)

type editorKeyMap struct {
	Run  key.Binding
	Save key.Binding
	Quit key.Binding
}

var editorKeys = editorKeyMap{
	Run:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "run")),
	Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// runResultMsg carries the outcome of a preview run.
type runResultMsg struct {
	resp *contract.ExecuteResponse
	src  string
	err  error
}

type savedMsg struct {
	paths []string
	err   error
}

// editorModel is a script editor with a live preview. Runs never modify
// base; the last successful result is what ctrl+s writes to outPath.
type editorModel struct {
	app        *App
	editor     textarea.Model
	scriptPath string
	outPath    string
	base       *domain.Drawing

	last    *contract.ExecuteResponse
	lastSrc string
	status  string
	running bool
	width   int
	quit    bool
}

func newEditorModel(app *App, src, scriptPath, outPath string, base *domain.Drawing) editorModel {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = `cad.draw_wall((0, 0), (5000, 0), 150)`
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(14)
	ta.SetValue(src)
	ta.Focus()

	return editorModel{
		app:        app,
		editor:     ta,
		scriptPath: scriptPath,
		outPath:    outPath,
		base:       base,
	}
}

func (m editorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(msg.Width)
		if h := msg.Height / 2; h > 3 {
			m.editor.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, editorKeys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, editorKeys.Run):
			if m.running {
				return m, nil
			}
			m.running = true
			m.status = "Running…"
			return m, m.runCmd(m.editor.Value())
		case key.Matches(msg, editorKeys.Save):
			return m, m.saveCmd()
		}

	case runResultMsg:
		m.running = false
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.last, m.lastSrc = msg.resp, msg.src
		if msg.resp.Success {
			m.status = formatter.StyleGreen.Render(fmt.Sprintf("✔ %d shape(s) created", len(msg.resp.CreatedIDs)))
		} else {
			m.status = formatter.ErrorKindBadge(msg.resp.Error.Kind)
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Save failed: " + msg.err.Error())
		} else {
			m.status = formatter.StyleGreen.Render("Saved " + strings.Join(msg.paths, ", "))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m editorModel) runCmd(src string) tea.Cmd {
	req := contract.NewExecuteRequest(src)
	req.Drawing = m.base
	scripts := m.app.Scripts
	return func() tea.Msg {
		resp, err := scripts.Execute(context.Background(), req)
		return runResultMsg{resp: resp, src: src, err: err}
	}
}

func (m editorModel) saveCmd() tea.Cmd {
	src := m.editor.Value()
	scriptPath, outPath := m.scriptPath, m.outPath
	var result *domain.Drawing
	if m.last != nil && m.last.Success && m.lastSrc == src {
		result = m.last.Drawing
	}
	return func() tea.Msg {
		var saved []string
		if scriptPath != "" {
			if err := os.WriteFile(scriptPath, []byte(src), 0o644); err != nil {
				return savedMsg{err: err}
			}
			saved = append(saved, scriptPath)
		}
		if outPath != "" && result != nil {
			if err := writeDrawingFile(outPath, "", result); err != nil {
				return savedMsg{err: err}
			}
			saved = append(saved, outPath)
		}
		if len(saved) == 0 {
			return savedMsg{err: fmt.Errorf("nothing to save: no script path, or no successful run of the current script")}
		}
		return savedMsg{paths: saved}
	}
}

func (m editorModel) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder

	title := "plancad editor"
	if m.scriptPath != "" {
		title += " · " + m.scriptPath
	}
	b.WriteString(formatter.StyleHeader.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")

	if m.last != nil {
		if m.last.Success {
			b.WriteString(formatter.FormatExecuteResult(m.last))
		} else {
			b.WriteString(formatter.FormatScriptFailure(m.lastSrc, m.last))
		}
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(formatter.Dim(fmt.Sprintf("%s run · %s save · %s quit",
		editorKeys.Run.Help().Key, editorKeys.Save.Help().Key, editorKeys.Quit.Help().Key)))
	return b.String()
}

func newEditCmd(app *App) *cobra.Command {
	var drawingPath, outPath, format string

	cmd := &cobra.Command{
		Use:   "edit [SCRIPT]",
		Short: "Edit a script with a live preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit needs an interactive terminal")
			}

			var scriptPath, src string
			if len(args) == 1 {
				scriptPath = args[0]
				if b, err := os.ReadFile(scriptPath); err == nil {
					src = string(b)
				} else if !os.IsNotExist(err) {
					return err
				}
			}

			var base *domain.Drawing
			if drawingPath != "" {
				d, err := readDrawingFile(drawingPath, format)
				if err != nil {
					return err
				}
				base = d
			}

			m := newEditorModel(app, src, scriptPath, outPath, base)
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&drawingPath, "drawing", "", "Snapshot file to preview against")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "File ctrl+s writes the previewed drawing to")
	cmd.Flags().StringVar(&format, "format", "", "Snapshot format for --drawing")

	return cmd
}
