package app

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/irscope/internal/config"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/orchestrator"
)

// initDoneMsg reports the outcome of compiler initialization.
type initDoneMsg struct{ err error }

// compiledMsg carries the outcome of a compile job.
type compiledMsg struct{ outcome orchestrator.Outcome }

// sourceChangedMsg is sent when the watcher saw the source file change.
type sourceChangedMsg struct{}

// sourceLoadedMsg carries the source file read after a change.
type sourceLoadedMsg struct {
	content string
	err     error
}

type savedMsg struct{ err error }

type configSavedMsg struct{ err error }

// logEntryMsg is sent for every new log entry while the overlay listens.
type logEntryMsg struct{}

func (m Model) initCmd() tea.Cmd {
	initializer := m.cfg.Initializer
	ctx := m.ctx
	return func() tea.Msg {
		if initializer == nil {
			return initDoneMsg{}
		}
		ctx, cancel := context.WithTimeout(ctx, initTimeout)
		defer cancel()
		return initDoneMsg{err: initializer.Initialize(ctx)}
	}
}

// compileCmd runs job off the update loop. The orchestrator's Run touches no
// state, so the outcome is applied when compiledMsg comes back.
func (m Model) compileCmd(job orchestrator.Job) tea.Cmd {
	orch := m.orch
	ctx := m.ctx
	log.Debug(log.CatCompile, "compile requested", "generation", job.Generation)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, compileTimeout)
		defer cancel()
		return compiledMsg{outcome: orch.Run(ctx, job)}
	}
}

func (m Model) readSourceCmd() tea.Cmd {
	path := m.cfg.SourcePath
	return func() tea.Msg {
		data, err := os.ReadFile(path) //nolint:gosec // G304: the user picked this file
		if err != nil {
			return sourceLoadedMsg{err: err}
		}
		return sourceLoadedMsg{content: string(data)}
	}
}

func (m Model) saveCmd() tea.Cmd {
	path := m.cfg.SourcePath
	content := m.editor.Value()
	return func() tea.Msg {
		return savedMsg{err: os.WriteFile(path, []byte(content), 0o644)} //nolint:gosec // G306: source files are not secret
	}
}

func (m Model) saveAutoCompileCmd(auto bool) tea.Cmd {
	path := m.cfg.ConfigPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return configSavedMsg{err: config.SaveAutoCompile(path, auto)}
	}
}

// listenWatcher waits for the next watcher event and turns it into a
// sourceChangedMsg. Nothing is returned once the watcher stops.
func (m Model) listenWatcher() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	next := m.watcherListener.Listen()
	return func() tea.Msg {
		if next() == nil {
			return nil
		}
		return sourceChangedMsg{}
	}
}

func (m Model) listenLog() tea.Cmd {
	if m.logListener == nil {
		return nil
	}
	next := m.logListener.Listen()
	return func() tea.Msg {
		if next() == nil {
			return nil
		}
		return logEntryMsg{}
	}
}
