package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ziz0u9/MillesBTP-sub000/cmd/tui/internal/view"
	"github.com/ziz0u9/MillesBTP-sub000/internal/config"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	eventStore "github.com/ziz0u9/MillesBTP-sub000/internal/event/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
	worksiteStore "github.com/ziz0u9/MillesBTP-sub000/internal/worksite/store"
)

type model struct {
	worksiteService *worksite.Service
	eventService    *event.Service
	ownerID         uuid.UUID

	currentView View

	worksitesView view.WorksitesModel
	timelineView  view.TimelineModel
}

type View int

const (
	ViewMenu      View = 0
	ViewWorksites View = 1
	ViewTimeline  View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Owner.ID == uuid.Nil {
		slog.Error("OWNER_ID is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	worksiteSvc := worksite.NewService(worksiteStore.New(db))
	eventSvc := event.NewService(eventStore.New(db))

	return model{
		worksiteService: worksiteSvc,
		eventService:    eventSvc,
		ownerID:         cfg.Owner.ID,
		currentView:     ViewMenu,
		worksitesView:   view.NewWorksitesModel(worksiteSvc, cfg.Owner.ID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewWorksites
				m.worksitesView = view.NewWorksitesModel(m.worksiteService, m.ownerID)

				return m, m.worksitesView.Init()
			}
		}
	case view.OpenTimelineMsg:
		m.currentView = ViewTimeline
		m.timelineView = view.NewTimelineModel(m.eventService, m.ownerID, msg.WorksiteID, msg.Name)

		return m, m.timelineView.Init()
	case view.BackMsg:
		switch m.currentView {
		case ViewTimeline:
			m.currentView = ViewWorksites
		default:
			m.currentView = ViewMenu
		}

		return m, nil
	}

	switch m.currentView {
	case ViewWorksites:
		var newModel tea.Model
		newModel, cmd = m.worksitesView.Update(msg)
		m.worksitesView = newModel.(view.WorksitesModel)
	case ViewTimeline:
		var newModel tea.Model
		newModel, cmd = m.timelineView.Update(msg)
		m.timelineView = newModel.(view.TimelineModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"MillesBTP Dashboard\n\n" +
				"1. Worksites\n\n" +
				"q. Quit",
		)
	case ViewWorksites:
		return m.worksitesView.View()
	case ViewTimeline:
		return m.timelineView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
