// ABOUTME: Hotel search screen with results table, hotel details, and booking form
// ABOUTME: Emits search, details, and booking requests for the app to run

package hotels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/widgets"
)

// SearchMsg asks for a new search with the given filters
type SearchMsg struct {
	Filters models.HotelFilters
}

// DetailsRequestedMsg asks for a hotel's full details
type DetailsRequestedMsg struct {
	ID string
}

// BookRequestedMsg carries a completed booking form
type BookRequestedMsg struct {
	Request models.BookingRequest
}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDetail
	modeBook
)

// Model is the hotel search screen
type Model struct {
	results []models.Hotel
	filters models.HotelFilters
	mode    mode

	table  table.Model
	search textinput.Model

	detail     *models.Hotel
	roomCursor int

	form     *huh.Form
	checkIn  string
	checkOut string
	guests   string

	status  string
	loading bool
	width   int
	height  int
}

// New creates the screen with no results
func New(width, height int) *Model {
	ti := textinput.New()
	ti.Placeholder = "city or country"
	ti.CharLimit = 64
	ti.Width = 30

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Hotel", Width: 22},
			{Title: "Location", Width: 20},
			{Title: "Rating", Width: 7},
			{Title: "Reviews", Width: 8},
			{Title: "Per night", Width: 10},
		}),
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
		filters: models.HotelFilters{SortBy: models.SortPopular},
		table:   t,
		search:  ti,
		loading: true,
	}
	m.SetSize(width, height)
	return m
}

// Filters returns the filters of the last search
func (m *Model) Filters() models.HotelFilters {
	return m.filters
}

// SetSize updates the screen dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height-8))
}

// SetStatus shows a one-line message under the current view
func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.loading = false
}

// SetResults replaces the search results
func (m *Model) SetResults(hotels []models.Hotel) {
	m.loading = false
	m.results = models.FilterHotels(hotels, models.HotelFilters{SortBy: m.filters.SortBy})

	rows := make([]table.Row, 0, len(m.results))
	for _, h := range m.results {
		rows = append(rows, table.Row{
			widgets.Truncate(h.Name, 22),
			widgets.Truncate(h.Location.String(), 20),
			fmt.Sprintf("%.1f", h.Rating),
			strconv.Itoa(h.ReviewCount),
			widgets.Money(h.PricePerNight),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Results returns the displayed results in display order
func (m *Model) Results() []models.Hotel {
	return m.results
}

// SetDetail shows a hotel's details
func (m *Model) SetDetail(h *models.Hotel) {
	m.loading = false
	m.detail = h
	m.roomCursor = 0
	m.mode = modeDetail
}

// Detail returns the hotel being shown, if any
func (m *Model) Detail() *models.Hotel {
	return m.detail
}

// Selected returns the hotel under the cursor, or nil when there are no results
func (m *Model) Selected() *models.Hotel {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.results) {
		return nil
	}
	return &m.results[i]
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		return m, nil
	}

	if m.mode == modeBook {
		return m, m.updateBook(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.loading {
		return m, nil
	}
	m.status = ""

	switch m.mode {
	case modeSearch:
		return m, m.updateSearch(key)
	case modeDetail:
		return m, m.updateDetail(key)
	}
	return m.updateList(key)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.filters.Location)
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case "s":
		m.filters.SortBy = nextSort(m.filters.SortBy)
		m.SetResults(m.results)
		return m, nil
	case "enter":
		h := m.Selected()
		if h == nil {
			return m, nil
		}
		m.loading = true
		id := h.ID
		return m, func() tea.Msg { return DetailsRequestedMsg{ID: id} }
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
		m.mode = modeList
		m.search.Blur()
		m.filters.Location = strings.TrimSpace(m.search.Value())
		m.loading = true
		filters := m.filters
		return func() tea.Msg { return SearchMsg{Filters: filters} }
	case "esc":
		m.mode = modeList
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.roomCursor > 0 {
			m.roomCursor--
		}
	case "down", "j":
		if m.detail != nil && m.roomCursor < len(m.detail.Rooms)-1 {
			m.roomCursor++
		}
	case "b":
		room := m.selectedRoom()
		if room == nil {
			return nil
		}
		if !room.Available {
			m.status = room.Type + " is not available"
			return nil
		}
		m.mode = modeBook
		m.form = m.createBookForm(room)
		return m.form.Init()
	case "esc":
		m.mode = modeList
		m.detail = nil
	}
	return nil
}

func (m *Model) selectedRoom() *models.Room {
	if m.detail == nil || m.roomCursor >= len(m.detail.Rooms) {
		return nil
	}
	return &m.detail.Rooms[m.roomCursor]
}

func (m *Model) createBookForm(room *models.Room) *huh.Form {
	m.checkIn, m.checkOut = "", ""
	m.guests = "1"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Check-in").
				Placeholder("2025-06-01").
				Value(&m.checkIn).
				Validate(dateErr),
			huh.NewInput().
				Title("Check-out").
				Placeholder("2025-06-04").
				Value(&m.checkOut).
				Validate(func(s string) error {
					if err := dateErr(s); err != nil {
						return err
					}
					return stayErr(m.checkIn, s)
				}),
			huh.NewInput().
				Title("Guests").
				Description(fmt.Sprintf("Up to %d", room.MaxGuests)).
				CharLimit(2).
				Value(&m.guests).
				Validate(func(s string) error { return guestsErr(s, room.MaxGuests) }),
		).Title(fmt.Sprintf("Book %s at %s", room.Type, m.detail.Name)),
	).WithTheme(styles.FormTheme())
}

func (m *Model) updateBook(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mode = modeDetail
		m.form = nil
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m.submitBooking()
	}
	return cmd
}

func (m *Model) submitBooking() tea.Cmd {
	room := m.selectedRoom()
	guests, _ := strconv.Atoi(strings.TrimSpace(m.guests))
	req := models.BookingRequest{
		HotelID:  m.detail.ID,
		RoomID:   room.ID,
		CheckIn:  strings.TrimSpace(m.checkIn),
		CheckOut: strings.TrimSpace(m.checkOut),
		Guests:   guests,
	}
	m.mode = modeDetail
	m.form = nil
	m.loading = true
	return func() tea.Msg { return BookRequestedMsg{Request: req} }
}

func dateErr(s string) error {
	if _, ok := models.ParseDate(strings.TrimSpace(s)); !ok {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func stayErr(checkIn, checkOut string) error {
	in, okIn := models.ParseDate(strings.TrimSpace(checkIn))
	out, okOut := models.ParseDate(strings.TrimSpace(checkOut))
	if okIn && okOut && !out.After(in) {
		return errors.New("check-out must be after check-in")
	}
	return nil
}

func guestsErr(s string, maxGuests int) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	switch {
	case err != nil || n < 1:
		return errors.New("at least 1 guest")
	case maxGuests > 0 && n > maxGuests:
		return fmt.Errorf("room fits %d guests", maxGuests)
	}
	return nil
}

// nextSort returns the sort order after current in models.SortOrders
func nextSort(current string) string {
	for i, s := range models.SortOrders {
		if s == current {
			return models.SortOrders[(i+1)%len(models.SortOrders)]
		}
	}
	return models.SortOrders[0]
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case modeDetail, modeBook:
		sb.WriteString(m.renderDetail())
	default:
		sb.WriteString(m.renderList())
	}

	if m.loading {
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("Loading..."))
	}
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(m.status))
	}
	return sb.String()
}

func (m *Model) renderList() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Hotel.String() + " Search hotels"))
	sb.WriteString("\n")

	location := m.filters.Location
	if location == "" {
		location = "anywhere"
	}
	line := styles.LabelStyle.Render("Location: ")
	if m.mode == modeSearch {
		line += m.search.View()
	} else {
		line += styles.ValueStyle.Render(location)
	}
	line += "   " + styles.LabelStyle.Render("Sort: ") + styles.ValueStyle.Render(m.filters.SortBy)
	sb.WriteString(line)
	sb.WriteString("\n\n")

	if len(m.results) == 0 {
		if !m.loading {
			sb.WriteString(styles.Help.Render("No hotels match your search."))
		}
		return sb.String()
	}
	sb.WriteString(m.table.View())
	return sb.String()
}

func (m *Model) renderDetail() string {
	h := m.detail
	if h == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Hotel.String() + " " + h.Name))
	sb.WriteString("\n")
	sb.WriteString(widgets.RatingStars(h.Rating))
	sb.WriteString(styles.LabelStyle.Render(fmt.Sprintf("  (%d reviews)", h.ReviewCount)))
	sb.WriteString("\n")

	address := h.Location.String()
	if h.Location.Address != "" {
		address = h.Location.Address + ", " + address
	}
	sb.WriteString(styles.LabelStyle.Render(address))
	sb.WriteString("\n\n")

	if h.Description != "" {
		sb.WriteString(lipgloss.NewStyle().Width(max(40, m.width-4)).Render(h.Description))
		sb.WriteString("\n\n")
	}
	if len(h.Amenities) > 0 {
		sb.WriteString(styles.LabelStyle.Render("Amenities: "))
		sb.WriteString(strings.Join(h.Amenities, ", "))
		sb.WriteString("\n")
	}
	if h.CancellationPolicy != "" {
		sb.WriteString(styles.LabelStyle.Render("Cancellation: "))
		sb.WriteString(h.CancellationPolicy)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Rooms"))
	sb.WriteString("\n")
	if len(h.Rooms) == 0 {
		sb.WriteString(styles.Help.Render("No rooms listed."))
	}
	for i, r := range h.Rooms {
		cursor := "  "
		if i == m.roomCursor {
			cursor = styles.KeyStyle.Render("> ")
		}
		avail := widgets.StatusText("available", widgets.StatusOK)
		if !r.Available {
			avail = widgets.StatusText("unavailable", widgets.StatusCritical)
		}
		sb.WriteString(fmt.Sprintf("%s%-12s %-10s up to %d  %s  %s\n",
			cursor, r.Type, r.BedType, r.MaxGuests, widgets.Money(r.Price), avail))
	}

	if m.mode == modeBook && m.form != nil {
		sb.WriteString("\n")
		sb.WriteString(m.form.View())
	}
	return sb.String()
}
