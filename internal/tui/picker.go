package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/ui"
)

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithTitle sets the heading displayed above the list.
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// DueFirst orders habits still due today ahead of the rest.
func DueFirst() PickerOption {
	return func(p *Picker) { p.dueFirst = true }
}

// Picker is a fuzzy-search habit selector built on Bubbletea.
type Picker struct {
	title    string
	height   int
	dueFirst bool

	entries  []habit.Entry
	filtered []scored
	query    string
	cursor   int
	offset   int
	chosen   *habit.Entry
	canceled bool

	termHeight int
}

type scored struct {
	idx   int
	score int
}

// NewPicker creates a Picker over entries.
func NewPicker(entries []habit.Entry, opts ...PickerOption) *Picker {
	p := &Picker{
		title:      "Pick a habit",
		height:     10,
		entries:    entries,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.applyFilter()
	return p
}

// Pick shows the picker and returns the chosen entry, or nil if the user
// cancelled.
func Pick(entries []habit.Entry, opts ...PickerOption) (*habit.Entry, error) {
	p := NewPicker(entries, opts...)
	m, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	result := m.(*Picker)
	if result.canceled {
		return nil, nil
	}
	return result.chosen, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termHeight = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.filtered) > 0 {
				e := p.entries[p.filtered[p.cursor].idx]
				p.chosen = &e
			}
			return p, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			p.move(-1)
			return p, nil
		case tea.KeyDown, tea.KeyCtrlN:
			p.move(1)
			return p, nil
		case tea.KeyBackspace:
			if r := []rune(p.query); len(r) > 0 {
				p.query = string(r[:len(r)-1])
				p.applyFilter()
			}
			return p, nil
		case tea.KeySpace:
			p.query += " "
			p.applyFilter()
			return p, nil
		case tea.KeyRunes:
			p.query += string(msg.Runes)
			p.applyFilter()
			return p, nil
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder

	b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	prompt := lipgloss.NewStyle().Foreground(ui.Leaf).Bold(true).Render("> ")
	b.WriteString("  " + prompt + p.query + ui.Muted.Render("▎") + "\n\n")

	if len(p.filtered) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matching habits") + "\n")
	} else {
		end := min(p.offset+p.visibleHeight(), len(p.filtered))
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderRow(p.entries[p.filtered[i].idx], i == p.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ navigate · enter select · esc cancel", len(p.filtered), len(p.entries))) + "\n")
	return b.String()
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.filtered) {
		return
	}
	p.cursor = next
	vis := p.visibleHeight()
	if p.cursor < p.offset {
		p.offset = p.cursor
	} else if p.cursor >= p.offset+vis {
		p.offset = p.cursor - vis + 1
	}
}

func (p *Picker) visibleHeight() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	return max(h, 3)
}

func (p *Picker) applyFilter() {
	p.filtered = p.filtered[:0]
	for i, e := range p.entries {
		if ok, sc := FuzzyMatch(p.query, e.Habit.Title); ok {
			p.filtered = append(p.filtered, scored{idx: i, score: sc})
		}
	}
	sort.SliceStable(p.filtered, func(i, j int) bool {
		a, b := p.filtered[i], p.filtered[j]
		if p.dueFirst {
			pa, pb := p.pending(a.idx), p.pending(b.idx)
			if pa != pb {
				return pa
			}
		}
		return a.score > b.score
	})
	p.cursor = 0
	p.offset = 0
}

// pending reports whether the entry is due today and not yet done.
func (p *Picker) pending(idx int) bool {
	s := p.entries[idx].Stats
	return s.IsDueToday && !s.IsCompletedToday
}

func (p *Picker) renderRow(e habit.Entry, selected bool) string {
	pointer := "  "
	title := e.Habit.Title
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		title = ui.Accent.Render(title)
	}

	mark := ui.Muted.Render(ui.IconRest)
	switch {
	case e.Stats.IsCompletedToday:
		mark = ui.Success.Render(ui.IconDone)
	case e.Stats.IsDueToday:
		mark = ui.Warning.Render(ui.IconTodo)
	}

	meta := ui.Muted.Render(fmt.Sprintf("  %s · %d%%", e.Habit.Frequency, e.Stats.CompletionRate))
	return "  " + pointer + mark + " " + title + "  " + ui.Flame(e.Stats.CurrentStreak) + meta
}
