package tui

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"datewheel/internal/locale"
	"datewheel/internal/picker"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrPickDismissed is returned by Pick when the picker closes without a date.
var ErrPickDismissed = errors.New("date picker dismissed")

// Options configures Run and Pick.
type Options struct {
	Locale  string
	Title   string
	Initial *picker.Date
	// Fields sets individual initial fields; it is applied after Initial.
	Fields   []picker.Option
	YearSpan int
	// Theme is light|dark|auto; Glyphs is unicode|ascii.
	Theme  string
	Glyphs string

	Now    func() time.Time
	Logger *slog.Logger

	// Input and Output default to the process's stdin/stdout.
	Input  io.Reader
	Output io.Writer
}

func (o Options) withDefaults() Options {
	if o.Locale == "" {
		o.Locale = locale.Base
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o Options) pickerConfig() picker.Config {
	return picker.Config{
		Locale:   o.Locale,
		YearSpan: o.YearSpan,
		Now:      o.Now,
		Logger:   o.Logger,
	}
}

func (o Options) showOptions() []picker.Option {
	var out []picker.Option
	if o.Initial != nil {
		out = append(out, picker.WithInitialDate(*o.Initial))
	}
	return append(out, o.Fields...)
}

func applyPresentation(o Options) {
	applyColorProfilePreference()
	applyThemePreference(o.Theme)
	applyGlyphPreference(o.Glyphs)
}

func programOptions(o Options) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if o.Input != nil {
		opts = append(opts, tea.WithInput(o.Input))
	}
	if o.Output != nil {
		opts = append(opts, tea.WithOutput(o.Output))
	}
	return opts
}

// Run starts the interactive example host.
func Run(opts Options) error {
	opts = opts.withDefaults()
	applyPresentation(opts)
	_, err := tea.NewProgram(newAppModel(opts), programOptions(opts)...).Run()
	return err
}

// pickModel hosts a single picker session and quits when it closes.
type pickModel struct {
	picker    PickerModel
	result    *picker.Date
	dismissed bool
}

func newPickModel(opts Options) pickModel {
	opts = opts.withDefaults()
	pm := NewPickerModel(picker.New(opts.pickerConfig()), opts.Logger)
	pm.now = opts.Now
	return pickModel{picker: pm.Open(opts.Title, nil, opts.showOptions()...)}
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DateSelectedMsg:
		d := msg.Date
		m.result = &d
		return m, tea.Quit
	case PickerDismissedMsg:
		m.dismissed = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.picker.Picker().Dismiss()
			m.dismissed = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	return m.picker.Overlay("")
}

// Pick opens the picker once and returns the confirmed date, or
// ErrPickDismissed.
func Pick(opts Options) (picker.Date, error) {
	opts = opts.withDefaults()
	applyPresentation(opts)
	final, err := tea.NewProgram(newPickModel(opts), programOptions(opts)...).Run()
	if err != nil {
		return picker.Date{}, err
	}
	m, ok := final.(pickModel)
	if !ok || m.result == nil {
		return picker.Date{}, ErrPickDismissed
	}
	return *m.result, nil
}
