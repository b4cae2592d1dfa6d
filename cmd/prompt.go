// ABOUTME: Interactive prompts for commands that need credentials or confirmation
// ABOUTME: Uses huh forms on a terminal and reads lines from stdin otherwise

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
)

var passwordStdin bool

// errAborted is returned when the user cancels a prompt
var errAborted = errors.New("aborted")

func init() {
	rootCmd.PersistentFlags().BoolVar(&passwordStdin, "password-stdin", false, "Read passwords and answers from stdin, one per line")
}

// Prompter asks the user for values. validate may be nil.
type Prompter interface {
	Input(title string, validate func(string) error) (string, error)
	Password(title string, validate func(string) error) (string, error)
	Confirm(title string) (bool, error)
}

// newPrompter picks huh forms when in is a terminal, line reading otherwise
func newPrompter(in *os.File, stderr io.Writer, forceLines bool) Prompter {
	if !forceLines && term.IsTerminal(int(in.Fd())) {
		return huhPrompter{}
	}
	return newLinePrompter(in, stderr)
}

type huhPrompter struct{}

func (huhPrompter) Input(title string, validate func(string) error) (string, error) {
	var v string
	field := huh.NewInput().Title(title).Value(&v)
	if validate != nil {
		field.Validate(validate)
	}
	if err := runField(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func (huhPrompter) Password(title string, validate func(string) error) (string, error) {
	var v string
	field := huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&v)
	if validate != nil {
		field.Validate(validate)
	}
	if err := runField(field); err != nil {
		return "", err
	}
	return v, nil
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var v bool
	field := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&v)
	err := runField(field)
	return v, err
}

func runField(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).WithTheme(styles.FormTheme()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errAborted
	}
	return err
}

// linePrompter reads one line per prompt. Validation failures are returned, not retried.
type linePrompter struct {
	r      *bufio.Reader
	stderr io.Writer
}

func newLinePrompter(r io.Reader, stderr io.Writer) *linePrompter {
	return &linePrompter{r: bufio.NewReader(r), stderr: stderr}
}

func (p *linePrompter) readLine(title string) (string, error) {
	if p.stderr != nil {
		fmt.Fprintf(p.stderr, "%s: ", title)
	}
	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("no input for %s", strings.ToLower(title))
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Input(title string, validate func(string) error) (string, error) {
	v, err := p.readLine(title)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (p *linePrompter) Password(title string, validate func(string) error) (string, error) {
	v, err := p.readLine(title)
	if err != nil {
		return "", err
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (p *linePrompter) Confirm(title string) (bool, error) {
	v, err := p.readLine(title + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
