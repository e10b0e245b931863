package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
)

// TimelineModel renders the append-only history of one worksite, newest
// entry first.
type TimelineModel struct {
	CommonModel
	svc     *event.Service
	ownerID uuid.UUID

	worksiteID   uuid.UUID
	worksiteName string

	events  []*event.Event
	offset  int
	height  int
	loading bool
	err     error
}

func NewTimelineModel(svc *event.Service, ownerID, worksiteID uuid.UUID, worksiteName string) TimelineModel {
	return TimelineModel{
		svc:          svc,
		ownerID:      ownerID,
		worksiteID:   worksiteID,
		worksiteName: worksiteName,
		height:       15,
		loading:      true,
	}
}

func (m TimelineModel) Title() string     { return "Timeline: " + m.worksiteName }
func (m TimelineModel) ShortHelp() string { return "Esc: back | up/down: scroll | r: refresh" }

func (m TimelineModel) Init() tea.Cmd {
	return m.loadCmd()
}

type loadTimelineMsg struct {
	events []*event.Event
	err    error
}

func (m TimelineModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		events, err := m.svc.List(ctx, m.ownerID, m.worksiteID)

		return loadTimelineMsg{events: events, err: err}
	}
}

func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTimelineMsg:
		m.loading = false
		m.err = msg.err
		m.events = msg.events
		m.offset = 0
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.events)-1 {
				m.offset++
			}
		}
	}

	return m, nil
}

func (m TimelineModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading timeline...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.events) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No events for " + m.worksiteName)
	}

	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true)

	var b strings.Builder

	end := min(m.offset+m.height, len(m.events))
	for _, e := range m.events[m.offset:end] {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			dateStyle.Render(FormatDate(e.EventDate)),
			typeStyle.Render(string(e.Type)),
			e.Title,
		))

		if detail := payloadSummary(e); detail != "" {
			b.WriteString("            " + dateStyle.Render(detail) + "\n")
		}
	}

	header := lipgloss.NewStyle().Bold(true).PaddingBottom(1).
		Render(fmt.Sprintf("%s (%d events)", m.worksiteName, len(m.events)))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, b.String()),
	)
}

func payloadSummary(e *event.Event) string {
	switch p := e.Payload.(type) {
	case event.CostPayload:
		return fmt.Sprintf("%s %s %s", p.Category, p.CostType, FormatAmount(p.Amount))
	case event.AmendmentPayload:
		return "impact " + FormatAmount(p.CostImpact)
	case event.StatusPayload:
		return p.From + " -> " + p.To
	case event.BudgetPayload:
		return FormatAmount(p.Previous) + " -> " + FormatAmount(p.New)
	}

	return ""
}
