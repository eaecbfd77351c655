package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator for connection settings
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	secret func(fd int) ([]byte, error)
}

// NewPrompter creates a prompter on the process terminal
func NewPrompter() *Prompter {
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		stdin:  os.Stdin,
		secret: term.ReadPassword,
	}
}

// NewPrompterFrom creates a prompter reading answers from r. Secrets are
// read as plain lines.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Ask prints a question and returns the trimmed answer, or def when the
// answer is empty
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskSecret reads a value without echo when stdin is a terminal
func (p *Prompter) AskSecret(question string) (string, error) {
	if p.stdin == nil || p.secret == nil || !term.IsTerminal(int(p.stdin.Fd())) {
		return p.Ask(question, "")
	}

	fmt.Fprintf(p.out, "%s: ", question)
	data, err := p.secret(int(p.stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// PromptConfig walks the operator through the connection settings, offering
// values from current as defaults. Stored secrets are kept when the answer
// is empty. Any previous session token is dropped.
func (p *Prompter) PromptConfig(current *Config) (*Config, error) {
	cfg := DefaultConfig()
	if current != nil {
		copied := *current
		cfg = &copied
	}
	cfg.SessionToken = ""

	fmt.Fprintln(p.out, "GLPI API connection settings")

	var err error
	if cfg.GLPIURL, err = p.Ask("GLPI API URL (e.g. http://glpi.example.com/apirest.php)", cfg.GLPIURL); err != nil {
		return nil, err
	}
	if cfg.UserLogin, err = p.Ask("GLPI login", cfg.UserLogin); err != nil {
		return nil, err
	}

	password, err := p.AskSecret("GLPI password")
	if err != nil {
		return nil, err
	}
	if password != "" {
		cfg.UserPassword = password
	}

	appToken, err := p.AskSecret("GLPI App-Token")
	if err != nil {
		return nil, err
	}
	if appToken != "" {
		cfg.AppToken = appToken
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
