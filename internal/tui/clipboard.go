package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type clipboardCmd struct {
	name string
	args []string
}

// clipboardCommands lists the system tools tried in order for goos.
func clipboardCommands(goos string) []clipboardCmd {
	switch goos {
	case "darwin":
		return []clipboardCmd{{name: "pbcopy"}}
	case "windows":
		return []clipboardCmd{
			{name: "cmd", args: []string{"/c", "clip"}},
			{name: "powershell", args: []string{"-NoProfile", "-Command", "Set-Clipboard"}},
		}
	default:
		// Wayland first, then X11.
		return []clipboardCmd{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

var errNoClipboard = errors.New("no clipboard tool found")

// clipboardWrite is swapped out in tests.
var clipboardWrite = copyToClipboard

func copyToClipboard(s string) error {
	err := errNoClipboard
	for _, c := range clipboardCommands(runtime.GOOS) {
		if _, lerr := exec.LookPath(c.name); lerr != nil {
			continue
		}
		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(s)
		if err = cmd.Run(); err == nil {
			return nil
		}
		err = errors.New(c.name + ": " + err.Error())
	}
	return err
}

type clipboardDoneMsg struct {
	text string
	err  error
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardDoneMsg{text: text, err: clipboardWrite(text)}
	}
}
