package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/stride/internal/autocomplete"
	"github.com/rshade/stride/internal/engine"
	"github.com/rshade/stride/internal/logging"
	"github.com/rshade/stride/internal/metric"
	listview "github.com/rshade/stride/internal/tui/list"
)

// EntryState is the lifecycle of an entry session.
type EntryState int

const (
	// EntryEditing accepts keystrokes.
	EntryEditing EntryState = iota
	// EntryAccepted ended with a parsed measurement.
	EntryAccepted
	// EntryCancelled ended without one.
	EntryCancelled
)

const (
	defaultDropdownHeight = 8
	defaultInputWidth     = 40
	inputCharLimit        = 128
	inputPrompt           = "› "
)

// EntryConfig configures an EntryModel.
type EntryConfig struct {
	// Options are the unit names offered. Nil offers every kind.
	Options []string
	Search  autocomplete.SearchOptions
	Entry   autocomplete.EntryOptions
	// Precision is the number of decimals shown for values.
	Precision int
	// DropdownHeight is the number of option rows shown at once.
	DropdownHeight int
	// Initial pre-fills the input.
	Initial string
}

// EntryModel is a bubbletea model for typing a measurement with a live
// dropdown of unit completions. Once the text parses, the reading is shown
// with its quick conversions and the kinds it combines with.
type EntryModel struct {
	ctx context.Context
	cfg EntryConfig

	input    textinput.Model
	dropdown *listview.Model[string]

	state       EntryState
	result      autocomplete.SearchResult
	suggestions []metric.Measurement
	compliments []metric.Measurement
	hint        string

	width int
}

// NewEntryModel creates an entry model. It fails when cfg.Entry requires
// values it does not allow.
func NewEntryModel(ctx context.Context, cfg EntryConfig) (*EntryModel, error) {
	if _, err := autocomplete.Sanitize("", cfg.Entry); err != nil {
		return nil, err
	}
	if cfg.Options == nil {
		cfg.Options = autocomplete.UnitOptions()
	}
	if cfg.DropdownHeight <= 0 {
		cfg.DropdownHeight = defaultDropdownHeight
	}

	input := textinput.New()
	input.Prompt = inputPrompt
	input.Placeholder = "5 miles, 1:30 hours, 8:00 min/mile"
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Focus()

	m := &EntryModel{
		ctx:   ctx,
		cfg:   cfg,
		input: input,
	}
	m.dropdown = listview.New(nil, cfg.DropdownHeight, renderOption)
	m.refresh(cfg.Initial)
	return m, nil
}

func renderOption(item string, selected bool) string {
	if selected {
		return SelectedStyle.Render("> " + item)
	}
	return SubtleStyle.Render("  " + item)
}

// Init implements tea.Model.
func (m *EntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(defaultInputWidth/2, msg.Width-len(inputPrompt)-borderPadding)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

//nolint:exhaustive // Only specific keys are handled; the rest go to the input.
func (m *EntryModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = EntryCancelled
		return m, tea.Quit
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.dropdown.Update(msg)
		return m, nil
	case tea.KeyTab:
		m.complete()
		return m, nil
	case tea.KeyEnter:
		if m.acceptable() {
			m.state = EntryAccepted
			logging.FromContext(m.ctx).Debug().
				Ctx(m.ctx).
				Str("component", "tui").
				Str("entry", m.input.Value()).
				Msg("entry accepted")
			return m, tea.Quit
		}
		m.complete()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh(m.input.Value())
	return m, cmd
}

// acceptable reports whether enter should accept the current text rather
// than complete the highlighted option.
func (m *EntryModel) acceptable() bool {
	if len(m.result.Selected) == 0 {
		return false
	}
	item, ok := m.dropdown.SelectedItem()
	return !ok || strings.EqualFold(item, m.input.Value())
}

// complete replaces the input with the highlighted option.
func (m *EntryModel) complete() {
	item, ok := m.dropdown.SelectedItem()
	if !ok {
		return
	}
	m.refresh(item)
}

// refresh sanitizes raw, writes it back to the input and recomputes the
// dropdown and the reading.
func (m *EntryModel) refresh(raw string) {
	clean, err := autocomplete.Sanitize(raw, m.cfg.Entry)
	if err != nil {
		clean = raw
	}
	if clean != "" && strings.HasSuffix(raw, " ") && !strings.HasSuffix(clean, " ") {
		clean += " "
	}
	if clean != m.input.Value() {
		m.input.SetValue(clean)
		m.input.CursorEnd()
	}

	m.result = autocomplete.SearchWith(clean, m.cfg.Options, m.cfg.Search)
	m.dropdown.SetItems(m.result.Results)

	m.hint = ""
	if unit := strings.TrimSpace(autocomplete.UnitText(clean)); len(m.result.Results) == 0 && unit != "" {
		if guess := autocomplete.DidYouMean(unit, m.cfg.Options); guess != "" {
			m.hint = "did you mean " + guess + "?"
		} else {
			m.hint = "unknown unit " + unit
		}
	}

	m.suggestions, m.compliments = nil, nil
	if len(m.result.Selected) > 0 {
		first := m.result.Selected[0]
		m.suggestions = engine.Suggest(m.ctx, first)
		m.compliments = engine.Compliment(first)
	}
}

// View implements tea.Model.
func (m *EntryModel) View() string {
	if m.state != EntryEditing {
		return ""
	}

	sections := []string{
		HeaderStyle.Render("stride"),
		m.input.View(),
	}
	if list := m.dropdown.View(); list != "" {
		sections = append(sections, list)
	}
	if m.hint != "" {
		sections = append(sections, WarningStyle.Render(m.hint))
	}
	for _, s := range []string{
		RenderSection("Reading", m.result.Selected, m.cfg.Precision),
		RenderSection("Conversions", m.suggestions, m.cfg.Precision),
		RenderSection("Compliments", m.compliments, m.cfg.Precision),
	} {
		if s != "" {
			sections = append(sections, s)
		}
	}
	sections = append(sections, SubtleStyle.Render("tab complete • ↑/↓ choose • enter accept • esc quit"))

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(clampWidth(m.width)).Render(view)
	}
	return view
}

// State returns the session state.
func (m *EntryModel) State() EntryState {
	return m.state
}

// Value returns the current input text.
func (m *EntryModel) Value() string {
	return m.input.Value()
}

// Options returns the dropdown entries for the current text.
func (m *EntryModel) Options() []string {
	return m.result.Results
}

// Hint returns the typo hint for the current text, if any.
func (m *EntryModel) Hint() string {
	return m.hint
}

// Accepted returns the measurements the session ended with, or nil when it
// was cancelled or is still running.
func (m *EntryModel) Accepted() []metric.Measurement {
	if m.state != EntryAccepted {
		return nil
	}
	return m.result.Selected
}

// Suggestions returns the quick conversions of the current reading.
func (m *EntryModel) Suggestions() []metric.Measurement {
	return m.suggestions
}

// Compliments returns the compliments of the current reading.
func (m *EntryModel) Compliments() []metric.Measurement {
	return m.compliments
}

// RunEntry runs an entry session on the terminal and returns the accepted
// measurements, or nil when the user quit.
func RunEntry(ctx context.Context, cfg EntryConfig, opts ...tea.ProgramOption) ([]metric.Measurement, error) {
	model, err := NewEntryModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, err
	}
	entry, ok := final.(*EntryModel)
	if !ok {
		return nil, nil
	}
	return entry.Accepted(), nil
}
