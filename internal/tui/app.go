package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"datewheel/internal/docs"
	"datewheel/internal/locale"
	"datewheel/internal/picker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type localeItem struct {
	code   string
	name   string
	sample string
}

func (i localeItem) Title() string       { return i.code }
func (i localeItem) Description() string { return i.name + "  " + i.sample }
func (i localeItem) FilterValue() string { return i.code + " " + i.name }

func localeItems(sample picker.Date) []list.Item {
	codes := locale.Codes()
	items := make([]list.Item, 0, len(codes))
	for _, c := range codes {
		items = append(items, localeItem{
			code:   c,
			name:   locale.DisplayName(c),
			sample: locale.FormatYMD(sample.Year, sample.Month, sample.Day, c),
		})
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorText).BorderForeground(colorAccent)
	l := list.New(items, d, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("locale", "locales")
	// ESC closes overlays here, not the program.
	l.KeyMap.Quit.SetKeys("q")
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}

// appModel is the example host: a locale chooser, the last confirmed date
// and the picker modal on top.
type appModel struct {
	opts    Options
	picker  PickerModel
	locales list.Model
	keys    hostKeyMap
	help    help.Model

	width  int
	height int

	selected *picker.Date
	status   string
	showDocs bool

	log *slog.Logger
}

func newAppModel(opts Options) appModel {
	opts = opts.withDefaults()
	p := picker.New(opts.pickerConfig())
	m := appModel{
		opts:    opts,
		picker:  NewPickerModel(p, opts.Logger),
		locales: newList("Locales", localeItems(picker.DateOf(opts.Now()))),
		keys:    newHostKeyMap(),
		help:    help.New(),
		log:     opts.Logger,
	}
	m.picker.now = opts.Now
	if opts.Initial != nil {
		d := *opts.Initial
		m.selected = &d
	}
	for i, it := range m.locales.Items() {
		if li, ok := it.(localeItem); ok && li.code == opts.Locale {
			m.locales.Select(i)
			break
		}
	}
	return m
}

func (m appModel) currentLocale() string {
	if it, ok := m.locales.SelectedItem().(localeItem); ok {
		return it.code
	}
	return m.opts.Locale
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.locales.SetSize(msg.Width, max(1, msg.Height-4))
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		return m, nil

	case pickerTickMsg, pickerTeardownMsg:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case DateSelectedMsg:
		d := msg.Date
		m.selected = &d
		m.status = "Selected " + locale.FormatYMD(d.Year, d.Month, d.Day, m.currentLocale())
		m.log.Info("date selected", "session", msg.Session, "date", d.String(), "locale", m.currentLocale())
		return m, nil

	case PickerDismissedMsg:
		m.status = "Cancelled"
		return m, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
			m.log.Debug("clipboard", "err", msg.err)
		} else {
			m.status = "Copied " + msg.text
		}
		return m, nil

	case tea.KeyMsg, tea.MouseMsg:
		if m.picker.Active() {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
	}

	k, isKey := msg.(tea.KeyMsg)
	if isKey && m.showDocs {
		switch k.String() {
		case "esc", "q", "?", "enter":
			m.showDocs = false
		}
		return m, nil
	}
	if isKey && m.locales.FilterState() != list.Filtering {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Docs):
			m.showDocs = true
			return m, nil
		case key.Matches(k, m.keys.Open):
			return m.openPicker(), nil
		case key.Matches(k, m.keys.Copy):
			if m.selected == nil {
				m.status = "Nothing to copy"
				return m, nil
			}
			d := *m.selected
			return m, copyCmd(locale.FormatYMD(d.Year, d.Month, d.Day, m.currentLocale()))
		}
	}

	var cmd tea.Cmd
	m.locales, cmd = m.locales.Update(msg)
	return m, cmd
}

func (m appModel) openPicker() appModel {
	code := m.currentLocale()
	m.picker.Picker().SetLocale(code)
	var opts []picker.Option
	if m.selected != nil {
		opts = append(opts, picker.WithInitialDate(*m.selected))
	}
	m.picker = m.picker.Open(m.opts.Title, nil, opts...)
	m.status = ""
	return m
}

func (m appModel) View() string {
	code := m.currentLocale()
	header := lipgloss.NewStyle().Bold(true).Foreground(colorText).Render("datewheel") +
		styleMuted().Render(fmt.Sprintf("  %s %s %s", code, glyphSep(), locale.DisplayName(code)))

	var body string
	if m.showDocs {
		md, _ := docs.Get("keys")
		body = RenderMarkdown(md, max(10, m.width-4), m.opts.Theme)
	} else {
		body = m.locales.View()
	}

	lines := []string{header, body, m.selectionLine(code), styleMuted().Render(m.help.ShortHelpView(m.keys.ShortHelp()))}
	out := strings.Join(lines, "\n")
	if m.width > 0 && m.height > 0 {
		out = normalizePane(out, m.width, m.height)
	}
	return m.picker.Overlay(out)
}

func (m appModel) selectionLine(code string) string {
	if m.selected == nil {
		if m.status != "" {
			return m.status
		}
		return styleMuted().Render("No date selected")
	}
	d := *m.selected
	line := locale.FormatYMD(d.Year, d.Month, d.Day, code) + "  " + glyphSep() + "  " + locale.FormatYearMonth(d.Year, d.Month, code)
	if m.status != "" {
		line += "  " + styleMuted().Render(m.status)
	}
	return line
}
