// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, runs gateway calls, and routes input to child components

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/logger"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/recovery"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/authform"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/bookings"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/dashboard"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/filepicker"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/hotels"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/menu"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/profile"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenAuthMenu Screen = iota
	ScreenSignIn
	ScreenRegister
	ScreenRecovery
	ScreenMainMenu
	ScreenDashboard
	ScreenBookings
	ScreenHotels
	ScreenProfile
	ScreenAvatarPicker
)

// signedOut reports whether the screen is reachable without a session
func (s Screen) signedOut() bool {
	return s <= ScreenRecovery
}

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Notices shown above the sign-in form
const (
	noticeRegistered = "Account created. Please sign in."
	noticeReset      = "Password updated. Please sign in."
)

// authDoneMsg is sent when a login or registration completes
type authDoneMsg struct {
	kind   authform.Kind
	email  string
	result *client.AuthResult
	err    error
}

// userLoadedMsg is sent when the restored session's user is refreshed
type userLoadedMsg struct {
	user *models.User
	err  error
}

// overviewLoadedMsg is sent when dashboard data is loaded
type overviewLoadedMsg struct {
	overview *client.Overview
	err      error
}

// bookingsLoadedMsg is sent when the booking list is loaded
type bookingsLoadedMsg struct {
	bookings []models.Booking
	err      error
}

// bookingCancelledMsg is sent when a cancellation completes
type bookingCancelledMsg struct {
	id  string
	err error
}

// hotelsLoadedMsg is sent when a hotel search completes
type hotelsLoadedMsg struct {
	hotels []models.Hotel
	err    error
}

// hotelLoadedMsg is sent when hotel details are loaded
type hotelLoadedMsg struct {
	hotel *models.Hotel
	err   error
}

// bookingCreatedMsg is sent when a booking request completes
type bookingCreatedMsg struct {
	booking *models.Booking
	err     error
}

// profileLoadedMsg is sent when the profile is loaded or saved.
// A nil profile with no error keeps the one already shown.
type profileLoadedMsg struct {
	profile *models.Profile
	notice  string
	err     error
}

// sessionExpiredMsg is sent by the gateway's invalidation listener
type sessionExpiredMsg struct{}

// App is the root model for the TUI
type App struct {
	ctx        context.Context
	client     *client.Client
	logger     *slog.Logger
	screen     Screen
	width      int
	height     int
	err        string
	lastUpdate time.Time

	// Child models
	authMenu   *menu.Menu
	mainMenu   *menu.Menu
	authForm   *authform.Form
	wizard     *wizard.Wizard
	dashboard  *dashboard.Dashboard
	bookings   *bookings.Model
	hotels     *hotels.Model
	profile    *profile.Model
	filePicker *filepicker.FilePicker
}

// New creates a new TUI application. A restored session opens on the main menu.
func New(ctx context.Context, apiClient *client.Client, lg *slog.Logger) *App {
	if lg == nil {
		lg = logger.Discard()
	}
	a := &App{
		ctx:    ctx,
		client: apiClient,
		logger: lg,
	}
	if apiClient.Session().IsAuthenticated() {
		a.showMainMenu()
	} else {
		a.showAuthMenu()
	}
	return a
}

// Screen returns the current screen
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenMainMenu {
		return a.loadUser()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		if a.filePicker != nil {
			a.filePicker.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateScreen(msg)

	case sessionExpiredMsg:
		return a, a.expire()

	// Menus
	case menu.SelectedMsg:
		return a, a.handleMenu(msg.Action)
	case menu.CancelledMsg:
		return a, tea.Quit

	// Signed-out flows
	case authform.SubmitMsg:
		return a, a.authenticate(msg)
	case authform.CancelledMsg:
		a.showAuthMenu()
		return a, nil
	case authDoneMsg:
		return a, a.handleAuthDone(msg)
	case wizard.DoneMsg:
		return a, a.showSignIn(msg.Email, noticeReset)
	case wizard.CancelledMsg:
		a.showAuthMenu()
		return a, nil

	case userLoadedMsg:
		if msg.err != nil {
			if client.IsSessionExpired(msg.err) {
				return a, a.expire()
			}
			a.logger.Warn("Failed to refresh user", "error", msg.err)
			return a, nil
		}
		a.client.Session().SetUser(msg.user)
		if a.screen == ScreenMainMenu {
			a.mainMenu = menu.NewMain(msg.user.DisplayName())
		}
		return a, nil

	// Dashboard
	case overviewLoadedMsg:
		if cmd, failed := a.failed(msg.err); failed {
			return a, cmd
		}
		a.err = ""
		a.lastUpdate = time.Now()
		if a.dashboard != nil {
			a.dashboard.Update(msg.overview)
		}
		return a, nil

	// Bookings
	case bookingsLoadedMsg:
		if cmd, failed := a.failed(msg.err); failed {
			return a, cmd
		}
		a.err = ""
		a.lastUpdate = time.Now()
		if a.bookings == nil {
			a.bookings = bookings.New(msg.bookings, a.contentWidth(), a.contentHeight())
		} else {
			a.bookings.SetBookings(msg.bookings)
		}
		return a, nil
	case bookings.RefreshMsg:
		return a, a.loadBookings()
	case bookings.CancelRequestedMsg:
		return a, a.cancelBooking(msg.ID)
	case bookings.BackMsg:
		a.showMainMenu()
		return a, nil
	case bookingCancelledMsg:
		if msg.err != nil {
			if client.IsSessionExpired(msg.err) {
				return a, a.expire()
			}
			if a.bookings != nil {
				a.bookings.SetStatus(client.Message(msg.err))
			}
			return a, nil
		}
		if a.bookings != nil {
			a.bookings.SetStatus("Booking " + msg.id + " cancelled")
		}
		return a, a.loadBookings()

	// Hotels
	case hotelsLoadedMsg:
		if a.hotels == nil {
			return a, nil
		}
		if msg.err != nil {
			if client.IsSessionExpired(msg.err) {
				return a, a.expire()
			}
			a.hotels.SetStatus(client.Message(msg.err))
			return a, nil
		}
		a.lastUpdate = time.Now()
		a.hotels.SetResults(msg.hotels)
		return a, nil
	case hotelLoadedMsg:
		if a.hotels == nil {
			return a, nil
		}
		if msg.err != nil {
			if client.IsSessionExpired(msg.err) {
				return a, a.expire()
			}
			a.hotels.SetStatus(client.Message(msg.err))
			return a, nil
		}
		a.hotels.SetDetail(msg.hotel)
		return a, nil
	case bookingCreatedMsg:
		if a.hotels == nil {
			return a, nil
		}
		if msg.err != nil {
			if client.IsSessionExpired(msg.err) {
				return a, a.expire()
			}
			a.hotels.SetStatus(client.Message(msg.err))
			return a, nil
		}
		a.hotels.SetStatus(fmt.Sprintf("Booked %s at %s", msg.booking.ID, msg.booking.HotelName))
		return a, nil
	case hotels.SearchMsg:
		return a, a.searchHotels(msg.Filters)
	case hotels.DetailsRequestedMsg:
		return a, a.loadHotel(msg.ID)
	case hotels.BookRequestedMsg:
		return a, a.createBooking(msg.Request)
	case hotels.BackMsg:
		a.showMainMenu()
		return a, nil

	// Profile
	case profileLoadedMsg:
		return a, a.handleProfile(msg)
	case profile.UpdateRequestedMsg:
		return a, a.updateProfile(msg.Update)
	case profile.PasswordRequestedMsg:
		return a, a.changePassword(msg.Change)
	case profile.AvatarRequestedMsg:
		dir, _ := os.Getwd()
		a.filePicker = filepicker.New(filepicker.Discover(dir))
		a.filePicker.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.screen = ScreenAvatarPicker
		return a, nil
	case profile.BackMsg:
		a.showMainMenu()
		return a, nil
	case filepicker.FileSelectedMsg:
		a.filePicker = nil
		a.screen = ScreenProfile
		if a.profile != nil {
			a.profile.SetStatus("Uploading avatar...", false)
		}
		return a, a.uploadAvatar(msg.Path)
	case filepicker.CancelledMsg:
		a.filePicker = nil
		a.screen = ScreenProfile
		return a, nil
	}

	// Forward everything else to the active screen (needed for huh form and textinput internals)
	return a.updateScreen(msg)
}

// updateScreen routes a message to the current screen's child model
func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.screen {
	case ScreenAuthMenu:
		_, cmd = a.authMenu.Update(msg)
	case ScreenMainMenu:
		_, cmd = a.mainMenu.Update(msg)
	case ScreenSignIn, ScreenRegister:
		if a.authForm != nil {
			_, cmd = a.authForm.Update(msg)
		}
	case ScreenRecovery:
		if a.wizard != nil {
			_, cmd = a.wizard.Update(msg)
		}
	case ScreenDashboard:
		if key, ok := msg.(tea.KeyMsg); ok {
			return a, a.updateDashboard(key)
		}
	case ScreenBookings:
		if a.bookings != nil {
			_, cmd = a.bookings.Update(msg)
			break
		}
		// Loading or failed: only retry and back are live
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "r":
				cmd = a.loadBookings()
			case "b", "esc":
				a.showMainMenu()
			}
		}
	case ScreenHotels:
		if a.hotels != nil {
			_, cmd = a.hotels.Update(msg)
		}
	case ScreenProfile:
		if a.profile != nil {
			_, cmd = a.profile.Update(msg)
		}
	case ScreenAvatarPicker:
		if a.filePicker != nil {
			_, cmd = a.filePicker.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "r":
		return a.loadOverview()
	case "h":
		return a.handleMenu(menu.ActionHotels)
	case "m":
		return a.handleMenu(menu.ActionBookings)
	case "p":
		return a.handleMenu(menu.ActionProfile)
	case "b", "esc":
		a.showMainMenu()
	}
	return nil
}

// handleMenu opens the screen for a menu action
func (a *App) handleMenu(action menu.Action) tea.Cmd {
	a.err = ""

	switch action {
	case menu.ActionSignIn:
		return a.showSignIn("", "")

	case menu.ActionRegister:
		a.authForm = authform.NewRegister()
		a.screen = ScreenRegister
		return a.authForm.Init()

	case menu.ActionForgotPassword:
		flow := recovery.New(a.client).WithLogger(a.logger)
		a.wizard = wizard.New(a.ctx, flow)
		a.wizard.SetWidth(a.width)
		a.screen = ScreenRecovery
		return a.wizard.Init()

	case menu.ActionDashboard:
		a.dashboard = dashboard.New(nil, a.dashboardWidth()-panelPadding, a.contentHeight())
		a.screen = ScreenDashboard
		return a.loadOverview()

	case menu.ActionHotels:
		a.hotels = hotels.New(a.contentWidth(), a.contentHeight())
		a.screen = ScreenHotels
		return a.searchHotels(a.hotels.Filters())

	case menu.ActionBookings:
		a.bookings = nil
		a.screen = ScreenBookings
		return a.loadBookings()

	case menu.ActionProfile:
		a.profile = profile.New(nil, a.contentWidth())
		a.screen = ScreenProfile
		return a.loadProfile()

	case menu.ActionSignOut:
		a.client.Logout(a.ctx)
		a.resetScreens()
		a.showAuthMenu()
		return nil

	case menu.ActionQuit:
		return tea.Quit
	}
	return nil
}

func (a *App) showAuthMenu() {
	a.authMenu = menu.NewAuth()
	a.authForm = nil
	a.wizard = nil
	a.screen = ScreenAuthMenu
}

func (a *App) showMainMenu() {
	name := ""
	if u := a.client.Session().User(); u != nil {
		name = u.DisplayName()
	}
	a.mainMenu = menu.NewMain(name)
	a.err = ""
	a.screen = ScreenMainMenu
}

func (a *App) showSignIn(email, notice string) tea.Cmd {
	a.authForm = authform.NewSignIn(email, notice)
	a.wizard = nil
	a.screen = ScreenSignIn
	return a.authForm.Init()
}

// resetScreens drops every signed-in child model
func (a *App) resetScreens() {
	a.dashboard = nil
	a.bookings = nil
	a.hotels = nil
	a.profile = nil
	a.filePicker = nil
	a.lastUpdate = time.Time{}
	a.err = ""
}

// expire returns to the sign-in form after the session is invalidated
func (a *App) expire() tea.Cmd {
	if a.screen.signedOut() {
		return nil
	}
	a.logger.Info("Session expired, returning to sign in")
	a.resetScreens()
	return a.showSignIn("", client.MsgSessionExpired)
}

// failed handles a load error for screens that show it as a banner
func (a *App) failed(err error) (tea.Cmd, bool) {
	if err == nil {
		return nil, false
	}
	if client.IsSessionExpired(err) {
		return a.expire(), true
	}
	a.err = client.Message(err)
	return nil, true
}

func (a *App) handleAuthDone(msg authDoneMsg) tea.Cmd {
	if msg.err != nil {
		if a.authForm == nil {
			return nil
		}
		return a.authForm.Fail(client.Message(msg.err))
	}

	// Registration without a token leaves the user signed out
	if msg.kind == authform.KindRegister && !a.client.Session().IsAuthenticated() {
		return a.showSignIn(msg.email, noticeRegistered)
	}

	a.authForm = nil
	a.showMainMenu()
	return nil
}

func (a *App) handleProfile(msg profileLoadedMsg) tea.Cmd {
	if a.profile == nil {
		return nil
	}
	if msg.err != nil {
		if client.IsSessionExpired(msg.err) {
			return a.expire()
		}
		if a.profile.Profile() == nil {
			a.err = client.Message(msg.err)
			return nil
		}
		a.profile.SetStatus(client.Message(msg.err), true)
		return nil
	}

	a.err = ""
	if msg.profile != nil {
		a.lastUpdate = time.Now()
		a.profile.SetProfile(msg.profile)
		if u := a.client.Session().User(); u != nil && msg.profile.Name != "" {
			updated := *u
			updated.Name = msg.profile.Name
			a.client.Session().SetUser(&updated)
		}
	}
	if msg.notice != "" {
		a.profile.SetStatus(msg.notice, false)
	}
	return nil
}

// resize propagates the terminal size to child models
func (a *App) resize() {
	if a.dashboard != nil {
		a.dashboard.SetSize(a.dashboardWidth()-panelPadding, a.contentHeight())
	}
	if a.bookings != nil {
		a.bookings.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.hotels != nil {
		a.hotels.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.profile != nil {
		a.profile.SetWidth(a.contentWidth())
	}
	if a.wizard != nil {
		a.wizard.SetWidth(a.width)
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenAuthMenu:
		content = a.authMenu.View()
	case ScreenMainMenu:
		content = a.mainMenu.View()
	case ScreenSignIn, ScreenRegister:
		if a.authForm != nil {
			content = a.authForm.View()
		}
	case ScreenRecovery:
		if a.wizard != nil {
			content = a.wizard.View()
		}
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenBookings:
		content = a.viewBookings()
	case ScreenHotels:
		if a.hotels != nil {
			content = a.hotels.View()
		}
	case ScreenProfile:
		content = a.viewProfile()
	case ScreenAvatarPicker:
		if a.filePicker != nil {
			content = a.filePicker.View()
		}
	}

	return a.wrapWithFrame(content)
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	if a.err != "" {
		return styles.StatusCritical.Render("Error: " + a.err)
	}

	leftPane := ""
	if a.dashboard != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	} else {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	}
	if a.width < minTerminalWidth {
		return leftPane
	}

	rightContent := styles.Title.Render(icons.Settings.String()+" Actions") + "\n"
	rightContent += icons.Refresh.String() + " Refresh\n"
	rightContent += icons.Hotel.String() + " Search hotels\n"
	rightContent += icons.Bed.String() + " My bookings\n"
	rightContent += icons.User.String() + " Profile\n"
	rightContent += icons.Back.String() + " Back to menu\n"
	rightContent += icons.Quit.String() + " Quit"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (a *App) viewBookings() string {
	if a.err != "" {
		return styles.StatusCritical.Render("Error: "+a.err) + "\n" + styles.Help.Render("Press r to retry or b to go back")
	}
	if a.bookings == nil {
		return "Loading bookings..."
	}
	return a.bookings.View()
}

func (a *App) viewProfile() string {
	if a.err != "" {
		return styles.StatusCritical.Render("Error: " + a.err)
	}
	if a.profile == nil {
		return ""
	}
	return a.profile.View()
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return max(0, a.width-panelPadding)
	}
	return (a.width - panelPadding) * 2 / 3
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return a.width - a.dashboardWidth() - 4
}

// contentWidth is the width available to full-screen children
func (a *App) contentWidth() int {
	return max(minTerminalWidth, a.width) - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header (1) + footer (1) + panel border and padding (4) + spacing (2)
	return a.height - 8
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	// Frame uses width-1 to prevent wrapping on some terminals
	width := max(minTerminalWidth, a.width-1)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Hotel Booking"))

	rightText := ""
	if !a.screen.signedOut() {
		if u := a.client.Session().User(); u != nil && u.DisplayName() != "" {
			rightText = " " + contextStyle.Render(icons.User.String()+" "+u.DisplayName()) + " "
		}
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// shortcuts lists the footer key hints for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenAuthMenu, ScreenMainMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenSignIn, ScreenRegister:
		return []string{"Tab Next", "Enter Submit", "Esc Back"}
	case ScreenRecovery:
		if a.wizard != nil && a.wizard.Step() == recovery.StepOTP {
			return []string{"Enter Verify", "ctrl+r Resend", "Esc Back"}
		}
		return []string{"Enter Continue", "Esc Cancel"}
	case ScreenDashboard:
		return []string{"r Refresh", "h Hotels", "m Bookings", "p Profile", "b Back"}
	case ScreenBookings:
		return []string{"↑↓ Navigate", "s Status", "/ Search", "c Cancel", "r Refresh", "b Back"}
	case ScreenHotels:
		return []string{"↑↓ Navigate", "Enter Details", "/ Location", "s Sort", "b Book", "Esc Back"}
	case ScreenProfile:
		return []string{"e Edit", "p Password", "a Avatar", "b Back"}
	case ScreenAvatarPicker:
		return []string{"↑↓ Navigate", "Enter Select", "Esc Back"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := max(minTerminalWidth, a.width-1)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}
	leftText := " " + strings.Join(styled, "  ") + " "

	rightText := ""
	if !a.lastUpdate.IsZero() && !a.screen.signedOut() && a.screen != ScreenMainMenu {
		rightText = " " + statusStyle.Render("Updated "+a.formatTimeSince(a.lastUpdate)) + " "
	}

	// Drop hints that do not fit rather than overflow the frame
	for len(styled) > 0 && lipgloss.Width(leftText)+lipgloss.Width(rightText) > width-4 {
		styled = styled[:len(styled)-1]
		leftText = " " + strings.Join(styled, "  ") + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// authenticate runs a login or registration
func (a *App) authenticate(msg authform.SubmitMsg) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		var result *client.AuthResult
		var err error
		if msg.Kind == authform.KindRegister {
			result, err = a.client.Register(ctx, client.Registration{
				Username: msg.Username,
				Email:    msg.Email,
				Password: msg.Password,
			})
		} else {
			result, err = a.client.Login(ctx, client.Credentials{Email: msg.Email, Password: msg.Password})
		}
		return authDoneMsg{kind: msg.Kind, email: msg.Email, result: result, err: err}
	}
}

// loadUser refreshes the user of a restored session
func (a *App) loadUser() tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		user, err := a.client.Me(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

// loadOverview creates a command to fetch dashboard data
func (a *App) loadOverview() tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		overview, err := a.client.DashboardOverview(ctx)
		return overviewLoadedMsg{overview: overview, err: err}
	}
}

func (a *App) loadBookings() tea.Cmd {
	a.err = ""
	ctx := a.ctx
	return func() tea.Msg {
		list, err := a.client.ListBookings(ctx)
		return bookingsLoadedMsg{bookings: list, err: err}
	}
}

func (a *App) cancelBooking(id string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return bookingCancelledMsg{id: id, err: a.client.CancelBooking(ctx, id)}
	}
}

func (a *App) searchHotels(filters models.HotelFilters) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		list, err := a.client.SearchHotels(ctx, filters)
		return hotelsLoadedMsg{hotels: list, err: err}
	}
}

func (a *App) loadHotel(id string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		hotel, err := a.client.HotelDetails(ctx, id)
		return hotelLoadedMsg{hotel: hotel, err: err}
	}
}

func (a *App) createBooking(req models.BookingRequest) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		booking, err := a.client.CreateBooking(ctx, req)
		return bookingCreatedMsg{booking: booking, err: err}
	}
}

func (a *App) loadProfile() tea.Cmd {
	a.err = ""
	ctx := a.ctx
	return func() tea.Msg {
		p, err := a.client.Profile(ctx)
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (a *App) updateProfile(update models.ProfileUpdate) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		p, err := a.client.UpdateProfile(ctx, update)
		return profileLoadedMsg{profile: p, notice: "Profile updated", err: err}
	}
}

func (a *App) changePassword(change models.PasswordChange) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		err := a.client.ChangePassword(ctx, change)
		return profileLoadedMsg{notice: "Password changed", err: err}
	}
}

func (a *App) uploadAvatar(path string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		defer f.Close()

		p, err := a.client.UploadAvatar(ctx, path, f)
		return profileLoadedMsg{profile: p, notice: "Avatar updated", err: err}
	}
}

// Run starts the TUI and blocks until it exits
func Run(ctx context.Context, apiClient *client.Client, lg *slog.Logger) error {
	app := New(ctx, apiClient, lg)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	unsubscribe := apiClient.OnSessionInvalidated(func(client.InvalidationEvent) {
		go p.Send(sessionExpiredMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
