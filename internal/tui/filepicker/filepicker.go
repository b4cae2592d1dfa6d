// ABOUTME: File picker TUI component for choosing an avatar image
// ABOUTME: Lists images found in a directory and accepts a typed path

package filepicker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
)

// MaxCandidates caps how many discovered images are listed
const MaxCandidates = 10

type state int

const (
	stateList state = iota
	stateInput
)

// FileSelectedMsg is sent when an image file is chosen
type FileSelectedMsg struct {
	Path string
}

// CancelledMsg is sent when the user cancels
type CancelledMsg struct{}

// FilePicker is the image selection component
type FilePicker struct {
	candidates []string
	cursor     int
	state      state
	textInput  textinput.Model
	err        string
	width      int
	height     int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	errorStyle    = styles.StatusCritical
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.Surface)
)

// New creates a FilePicker listing the given image paths
func New(candidates []string) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/avatar.png"
	ti.CharLimit = 256
	ti.Width = 60

	return &FilePicker{
		candidates: candidates,
		state:      stateList,
		textInput:  ti,
	}
}

// Discover returns image files directly inside dir, sorted by name
func Discover(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var found []string
	for _, e := range entries {
		if e.IsDir() || !client.IsImageFile(e.Name()) {
			continue
		}
		found = append(found, filepath.Join(dir, e.Name()))
	}
	sort.Strings(found)
	if len(found) > MaxCandidates {
		found = found[:MaxCandidates]
	}
	return found
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""

		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		}
	}

	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxItems := len(fp.candidates) + 1 // +1 for "Enter path..."

	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < maxItems-1 {
			fp.cursor++
		}
	case "enter":
		if fp.cursor < len(fp.candidates) {
			return fp.selectFile(fp.candidates[fp.cursor])
		}
		fp.state = stateInput
		return fp, fp.textInput.Focus()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}

	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.Blur()
		fp.textInput.SetValue("")
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.selectFile(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) selectFile(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	info, err := os.Stat(expanded)
	switch {
	case os.IsNotExist(err):
		fp.err = "File not found: " + path
		return fp, nil
	case os.IsPermission(err):
		fp.err = "Cannot read file: permission denied"
		return fp, nil
	case err != nil:
		fp.err = "Error reading file: " + err.Error()
		return fp, nil
	case info.IsDir():
		fp.err = path + " is a directory"
		return fp, nil
	case !client.IsImageFile(expanded):
		fp.err = "Please choose an image file (png, jpg, gif, webp)"
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expanded}
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetError sets an error message to display
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	if fp.state == stateInput {
		return fp.viewInput()
	}
	return fp.viewList()
}

func (fp *FilePicker) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Choose an avatar image"))
	b.WriteString("\n")

	if len(fp.candidates) > 0 {
		b.WriteString(styles.LabelStyle.Render("Images in this directory:"))
		b.WriteString("\n")
		for i, path := range fp.candidates {
			cursor := "  "
			style := normalStyle
			if i == fp.cursor {
				cursor = "> "
				style = selectedStyle
			}
			display := path
			if len(display) > fp.width-10 && fp.width > 20 {
				display = "..." + display[len(display)-(fp.width-13):]
			}
			b.WriteString(cursor + style.Render(display) + "\n")
		}

		dividerWidth := min(40, fp.width-4)
		if dividerWidth < 1 {
			dividerWidth = 40
		}
		b.WriteString(dividerStyle.Render(strings.Repeat("─", dividerWidth)))
		b.WriteString("\n")
	}

	cursor := "  "
	style := normalStyle
	if fp.cursor == len(fp.candidates) {
		cursor = "> "
		style = selectedStyle
	}
	b.WriteString(cursor + style.Render("Enter path...") + "\n")

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}

func (fp *FilePicker) viewInput() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Enter image path"))
	b.WriteString("\n")
	b.WriteString(fp.textInput.View())

	if fp.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}
