package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected reports whether it is highlighted.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a windowed, keyboard-driven list. Only the rows inside the
// window are rendered, so the item slice can be replaced on every keystroke
// without cost proportional to its length.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected    int
	visibleFrom int
	visibleTo   int
	height      int
}

// New creates a list showing at most height rows.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	if height < 1 {
		height = 1
	}
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys. Printable runes are left alone so the
// list can sit under a text input.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.handleKeyMsg(msg)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are relevant.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		m.Move(-1)
	case tea.KeyDown:
		m.Move(1)
	case tea.KeyPgUp:
		m.Move(-m.height)
	case tea.KeyPgDown:
		m.Move(m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	}
}

// Move shifts the selection by delta, clamped to the list.
func (m *Model[T]) Move(delta int) {
	m.SetSelected(m.selected + delta)
}

// SetItems replaces the items and resets the selection to the top.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.updateVisibleRange()
}

// SetSelected sets the selected index, capped to valid bounds.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// updateVisibleRange scrolls the window just far enough to keep the
// selection in view.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	if m.selected < m.visibleFrom {
		m.visibleFrom = m.selected
	}
	if m.selected >= m.visibleFrom+m.height {
		m.visibleFrom = m.selected - m.height + 1
	}
	if maxFrom := max(0, len(m.items)-m.height); m.visibleFrom > maxFrom {
		m.visibleFrom = maxFrom
	}
	m.visibleTo = min(len(m.items), m.visibleFrom+m.height)
}

// View renders the rows inside the window.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the total number of items.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// VisibleFrom returns the first rendered index.
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns one past the last rendered index.
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// SelectedItem returns the highlighted item, or false when the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.selected], true
}
