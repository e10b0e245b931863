package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type worksitesState int

const (
	worksitesStateBrowse worksitesState = iota
	worksitesStateEditStatus
)

// OpenTimelineMsg asks the root model to show the timeline of a worksite.
type OpenTimelineMsg struct {
	WorksiteID uuid.UUID
	Name       string
}

type WorksitesModel struct {
	CommonModel
	svc     *worksite.Service
	ownerID uuid.UUID

	state worksitesState
	table table.Model
	ws    []*worksite.Worksite
	form  *huh.Form

	statusFilterIdx int
	profitFilterIdx int

	filter  worksite.ListFilter
	loading bool
	err     error
	status  string

	formStatus string
}

func NewWorksitesModel(svc *worksite.Service, ownerID uuid.UUID) WorksitesModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Budget", Width: 12},
		{Title: "Committed", Width: 12},
		{Title: "Margin", Width: 12},
		{Title: "Margin %", Width: 9},
		{Title: "Profit", Width: 11},
		{Title: "Alerts", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return WorksitesModel{
		svc:     svc,
		ownerID: ownerID,
		table:   t,
		filter:  worksite.ListFilter{},
	}
}

func (m WorksitesModel) Title() string { return "Worksites" }
func (m WorksitesModel) ShortHelp() string {
	if m.state == worksitesStateEditStatus {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: timeline | e: edit status | s: status filter | p: profitability filter | r: refresh"
}

func (m WorksitesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type loadWorksitesMsg struct {
	ws  []*worksite.Worksite
	err error
}

func (m WorksitesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ws, err := m.svc.List(ctx, m.ownerID, m.filter)

		return loadWorksitesMsg{ws: ws, err: err}
	}
}

type statusSavedMsg struct {
	err error
}

func (m WorksitesModel) saveStatusCmd(id uuid.UUID, status worksite.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.UpdateStatus(ctx, m.ownerID, id, status)

		return statusSavedMsg{err: err}
	}
}

func (m WorksitesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadWorksitesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ws = msg.ws
		m.err = nil
		m.refreshTable()
		return m, nil

	case statusSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = worksitesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case worksitesStateBrowse:
		return m.updateBrowse(msg)
	case worksitesStateEditStatus:
		return m.updateEditStatus(msg)
	}

	return m, nil
}

func (m WorksitesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.ws) {
				return m, nil
			}

			w := m.ws[idx]

			return m, func() tea.Msg {
				return OpenTimelineMsg{WorksiteID: w.ID, Name: w.Name}
			}
		case "e":
			return m.enterEditStatus()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadCmd()
		case "p":
			m.profitFilterIdx = (m.profitFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *WorksitesModel) applyFilter() {
	active, completed, archived, cancelled := worksite.StatusActive, worksite.StatusCompleted, worksite.StatusArchived, worksite.StatusCancelled
	statuses := []*worksite.Status{
		nil,
		&active,
		&completed,
		&archived,
		&cancelled,
	}
	profitable, watch, atRisk := worksite.Profitable, worksite.Watch, worksite.AtRisk
	profits := []*worksite.Profitability{
		nil,
		&profitable,
		&watch,
		&atRisk,
	}

	m.filter.Status = statuses[m.statusFilterIdx]
	m.filter.Profitability = profits[m.profitFilterIdx]
}

func (m *WorksitesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.ws))
	for _, w := range m.ws {
		rows = append(rows, table.Row{
			w.Name,
			string(w.Status),
			FormatAmount(w.BudgetInitial),
			FormatAmount(w.CostsCommitted),
			FormatAmount(w.MarginEstimated),
			fmt.Sprintf("%.1f", w.MarginPercentage),
			string(w.Profitability),
			alertFlags(w),
		})
	}

	m.table.SetRows(rows)
}

func alertFlags(w *worksite.Worksite) string {
	var flags []string
	if w.BudgetAlert {
		flags = append(flags, "budget")
	}

	if w.AmendmentAlert {
		flags = append(flags, "avenant")
	}

	if w.AdminAlert {
		flags = append(flags, "admin")
	}

	return strings.Join(flags, ",")
}

func (m WorksitesModel) enterEditStatus() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ws) {
		return m, nil
	}

	m.formStatus = string(m.ws[idx].Status)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Active", string(worksite.StatusActive)),
					huh.NewOption("Completed", string(worksite.StatusCompleted)),
					huh.NewOption("Archived", string(worksite.StatusArchived)),
					huh.NewOption("Cancelled", string(worksite.StatusCancelled)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = worksitesStateEditStatus
	m.table.Blur()
	return m, m.form.Init()
}

func (m WorksitesModel) updateEditStatus(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = worksitesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ws) {
		m.state = worksitesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.saveStatusCmd(m.ws[idx].ID, worksite.Status(m.formStatus))
}

func (m WorksitesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading worksites...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Active", "Completed", "Archived", "Cancelled"}
	profitLabels := []string{"All", "Profitable", "Watch", "At risk"}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [p] Profitability: %s",
		statusLabels[m.statusFilterIdx],
		profitLabels[m.profitFilterIdx],
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == worksitesStateEditStatus && m.form != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.form.View())
	}

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
