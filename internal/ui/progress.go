// Package ui renders batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wgslfuzz/internal/batch"
)

// MaxRows is how many slot rows are shown; older finished rows scroll away.
const MaxRows = 12

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	prog    progress.Model
	slots   []slotItem
	order   []int // slots in the order they were last touched
	counts  map[batch.Status]int
	width   int
	done    bool
}

type slotItem struct {
	status   string
	attempts int
	final    bool
	detail   string
}

type eventMsg batch.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress
// for count slots. The model quits when events is closed.
func NewProgressModel(title string, count int, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	slots := make([]slotItem, count)
	for i := range slots {
		slots[i].status = "queued"
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		slots:   slots,
		counts:  make(map[batch.Status]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(batch.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.slots) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d done)", m.title, m.finished(), len(m.slots))
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  accepted %d  rejected %d  failed %d\n\n",
		m.counts[batch.StatusAccepted], m.counts[batch.StatusRejected], m.counts[batch.StatusFailed])

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)

	rows := m.order
	if len(rows) > MaxRows {
		rows = rows[len(rows)-MaxRows:]
	}
	for _, slot := range rows {
		item := m.slots[slot]
		name := fmt.Sprintf("slot %-4d", slot)
		if item.detail != "" {
			name += " " + item.detail
		}
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(name, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) touch(slot int) {
	for i, s := range m.order {
		if s == slot {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append(m.order, slot)
}

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	if ev.Slot < 0 || ev.Slot >= len(m.slots) {
		return nil
	}
	item := &m.slots[ev.Slot]
	switch ev.Status {
	case batch.StatusStarted:
		item.status = "started"
	case batch.StatusAttempt:
		item.attempts = ev.Attempt + 1
		item.status = fmt.Sprintf("attempt %d", item.attempts)
	case batch.StatusAccepted:
		item.status = "accepted"
		item.detail = ev.ID
	case batch.StatusRejected, batch.StatusFailed:
		item.status = string(ev.Status)
		if ev.Err != nil {
			item.detail = ev.Err.Error()
		}
	}
	if ev.Final && !item.final {
		item.final = true
		m.counts[ev.Status]++
	}
	m.touch(ev.Slot)
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.slots)))
}

func (m *progressModel) finished() int {
	n := 0
	for _, s := range m.slots {
		if s.final {
			n++
		}
	}
	return n
}

func styleStatus(status string) lipgloss.Style {
	switch {
	case status == "accepted":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case status == "failed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case status == "rejected":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case status == "started", strings.HasPrefix(status, "attempt"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// Хвост входит в ширину
	return runewidth.Truncate(value, width, "...")
}
