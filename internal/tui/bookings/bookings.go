// ABOUTME: Booking list screen with status filter, search, and cancellation
// ABOUTME: Table of bookings on the left, details of the selected booking on the right

package bookings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/widgets"
)

// CancelRequestedMsg is sent once the user confirms a cancellation
type CancelRequestedMsg struct {
	ID string
}

// RefreshMsg asks for the booking list to be reloaded
type RefreshMsg struct{}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

// statusCycle is the order "s" steps through
var statusCycle = []string{
	models.StatusFilterAll,
	models.StatusConfirmed,
	models.StatusPending,
	models.StatusCancelled,
	models.StatusCompleted,
}

// detailWidth is the width of the side pane on wide terminals
const detailWidth = 40

// Model is the bookings screen
type Model struct {
	all     []models.Booking
	visible []models.Booking
	filters models.BookingFilters

	table      table.Model
	search     textinput.Model
	searching  bool
	confirming bool
	status     string

	width  int
	height int
}

// New creates the screen over an already loaded booking list
func New(bookings []models.Booking, width, height int) *Model {
	ti := textinput.New()
	ti.Placeholder = "hotel, city, or booking id"
	ti.CharLimit = 64
	ti.Width = 30

	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	t.SetStyles(s)

	m := &Model{
		filters: models.BookingFilters{Status: models.StatusFilterAll},
		table:   t,
		search:  ti,
	}
	m.SetSize(width, height)
	m.SetBookings(bookings)
	return m
}

func columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Hotel", Width: 20},
		{Title: "Check-in", Width: 12},
		{Title: "Check-out", Width: 12},
		{Title: "Guests", Width: 6},
		{Title: "Price", Width: 10},
		{Title: "Status", Width: 10},
	}
}

// SetBookings replaces the list, keeping the active filters
func (m *Model) SetBookings(bookings []models.Booking) {
	m.all = bookings
	m.confirming = false
	m.applyFilters()
}

// SetStatus shows a one-line message under the table
func (m *Model) SetStatus(msg string) {
	m.status = msg
}

// SetSize updates the screen dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// title, filter line, status, and help take 8 rows
	m.table.SetHeight(max(3, height-8))
}

// Visible returns the bookings that pass the current filters
func (m *Model) Visible() []models.Booking {
	return m.visible
}

// Filters returns the active filters
func (m *Model) Filters() models.BookingFilters {
	return m.filters
}

// Selected returns the booking under the cursor, or nil when the list is empty
func (m *Model) Selected() *models.Booking {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return &m.visible[i]
}

func (m *Model) applyFilters() {
	var selectedID string
	if b := m.Selected(); b != nil {
		selectedID = b.ID
	}

	m.visible = models.FilterBookings(m.all, m.filters)

	rows := make([]table.Row, 0, len(m.visible))
	cursor := 0
	for i, b := range m.visible {
		if b.ID == selectedID {
			cursor = i
		}
		rows = append(rows, table.Row{
			b.ID,
			widgets.Truncate(b.HotelName, 20),
			models.FormatDate(b.CheckIn),
			models.FormatDate(b.CheckOut),
			fmt.Sprintf("%d", b.Guests),
			widgets.Money(b.Price),
			b.Status,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.confirming:
			return m, m.updateConfirm(msg)
		case m.searching:
			return m, m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.filters.Status = nextStatus(m.filters.Status)
		m.applyFilters()
		return m, nil
	case "/":
		m.searching = true
		m.search.SetValue(m.filters.SearchQuery)
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case "c":
		b := m.Selected()
		if b == nil {
			return m, nil
		}
		if !b.Cancellable() {
			m.status = fmt.Sprintf("Booking %s is %s and cannot be cancelled", b.ID, strings.ToLower(b.Status))
			return m, nil
		}
		m.confirming = true
		m.status = ""
		return m, nil
	case "r":
		m.status = ""
		return m, func() tea.Msg { return RefreshMsg{} }
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filters.SearchQuery = ""
		m.applyFilters()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filters.SearchQuery = strings.TrimSpace(m.search.Value())
	m.applyFilters()
	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	m.confirming = false
	switch msg.String() {
	case "y", "Y":
		b := m.Selected()
		if b == nil {
			return nil
		}
		id := b.ID
		m.status = "Cancelling " + id + "..."
		return func() tea.Msg { return CancelRequestedMsg{ID: id} }
	}
	m.status = "Cancellation aborted"
	return nil
}

// nextStatus returns the filter after current in statusCycle
func nextStatus(current string) string {
	for i, s := range statusCycle {
		if strings.EqualFold(s, current) {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Bed.String() + " My bookings"))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilterLine())
	sb.WriteString("\n\n")

	var body string
	if len(m.visible) == 0 {
		body = styles.Help.Render(m.emptyText())
	} else {
		body = m.table.View()
	}

	if len(m.visible) > 0 && m.width >= detailWidth+70 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.renderDetail())
	} else if len(m.visible) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.renderDetail())
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	switch {
	case m.confirming:
		if b := m.Selected(); b != nil {
			sb.WriteString("\n")
			sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("Cancel booking %s at %s? (y/n)", b.ID, b.HotelName)))
		}
	case m.status != "":
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(m.status))
	}

	return sb.String()
}

func (m *Model) emptyText() string {
	if len(m.all) == 0 {
		return "You have no bookings yet."
	}
	return "No bookings match the current filters."
}

func (m *Model) renderFilterLine() string {
	status := m.filters.Status
	if status == "" {
		status = models.StatusFilterAll
	}
	line := styles.LabelStyle.Render("Status: ") + styles.ValueStyle.Render(status)

	switch {
	case m.searching:
		line += "   " + styles.LabelStyle.Render("Search: ") + m.search.View()
	case m.filters.SearchQuery != "":
		line += "   " + styles.LabelStyle.Render("Search: ") + styles.ValueStyle.Render(m.filters.SearchQuery)
	}

	line += "   " + styles.LabelStyle.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.all)))
	return line
}

func (m *Model) renderDetail() string {
	b := m.Selected()
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(b.HotelName))
	sb.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-10s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	field("Booking", b.ID)
	field("Location", b.Location)
	field("Room", b.RoomType)
	field("Dates", models.FormatDate(b.CheckIn)+" to "+models.FormatDate(b.CheckOut))
	field("Guests", fmt.Sprintf("%d", b.Guests))
	field("Price", widgets.Money(b.Price))
	field("Booked", models.FormatDate(b.BookingDate))
	field("Status", widgets.StatusBadge(b.Status))
	if b.PaymentStatus != "" {
		field("Payment", widgets.Badge(b.PaymentStatus, widgets.PaymentLevel(b.PaymentStatus)))
	}
	if b.SpecialRequests != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.LabelStyle.Render("Requests"))
		sb.WriteString("\n")
		sb.WriteString(b.SpecialRequests)
	}

	return styles.Panel.Width(detailWidth).Render(strings.TrimRight(sb.String(), "\n"))
}
