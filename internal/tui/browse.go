package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/appointment"
	"github.com/carelane/carectl/internal/authz"
)

// BrowseResult is what the user picked in the appointments browser.
type BrowseResult struct {
	Action      authz.Action
	Appointment api.Appointment
	// Quit is true when the user left without choosing an action.
	Quit bool
}

var (
	browseTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	browseHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	browseTableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// browseModel is the bubbletea model for the appointments browser.
//
// Action keys are live only when both the role permission and the selected
// appointment's status allow the transition; anything else is ignored
// rather than surfaced as an error.
type browseModel struct {
	table        table.Model
	appointments []api.Appointment
	role         authz.Role
	result       BrowseResult
}

// NewBrowseModel builds the browser for the given appointments and role.
func NewBrowseModel(appointments []api.Appointment, role authz.Role) tea.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Patient", Width: 20},
		{Title: "Doctor", Width: 20},
		{Title: "Date", Width: 20},
		{Title: "Min", Width: 5},
		{Title: "Status", Width: 12},
	}

	rows := make([]table.Row, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, table.Row{
			a.ID, a.PatientName, a.DoctorName, a.AppointmentDate,
			strconv.Itoa(a.DurationMinutes), a.Status,
		})
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	return browseModel{
		table:        tbl,
		appointments: appointments,
		role:         role,
		result:       BrowseResult{Quit: true},
	}
}

// Init implements tea.Model.
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m.choose(authz.ActionRescheduleAppointment)
		case "d":
			return m.choose(authz.ActionCompleteAppointment)
		case "x":
			return m.choose(authz.ActionCancelAppointment)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// choose records the action for the selected row if the combined role/state
// gate allows it.
func (m browseModel) choose(action authz.Action) (tea.Model, tea.Cmd) {
	selected := m.selected()
	if selected == nil {
		return m, nil
	}
	if !appointment.Can(m.role, action, selected.LifecycleStatus()) {
		return m, nil
	}
	m.result = BrowseResult{Action: action, Appointment: *selected}
	return m, tea.Quit
}

func (m browseModel) selected() *api.Appointment {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.appointments) {
		return nil
	}
	return &m.appointments[idx]
}

// View implements tea.Model.
func (m browseModel) View() string {
	help := "↑/↓ move · q quit"
	if selected := m.selected(); selected != nil {
		for _, action := range appointment.Available(m.role, selected.LifecycleStatus()) {
			switch action {
			case authz.ActionRescheduleAppointment:
				help += " · r reschedule"
			case authz.ActionCompleteAppointment:
				help += " · d complete"
			case authz.ActionCancelAppointment:
				help += " · x cancel"
			}
		}
	}

	return browseTitleStyle.Render("Appointments") + "\n" +
		browseTableStyle.Render(m.table.View()) + "\n" +
		browseHelpStyle.Render(help)
}

// Result extracts the browse outcome after the program finishes.
func Result(m tea.Model) BrowseResult {
	if bm, ok := m.(browseModel); ok {
		return bm.result
	}
	return BrowseResult{Quit: true}
}

// RunBrowse runs the appointments browser and returns the user's choice.
func RunBrowse(appointments []api.Appointment, role authz.Role) (BrowseResult, error) {
	final, err := tea.NewProgram(NewBrowseModel(appointments, role)).Run()
	if err != nil {
		return BrowseResult{Quit: true}, err
	}
	return Result(final), nil
}
