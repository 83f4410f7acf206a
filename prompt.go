package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/cafelife/menuqr/deploy"
)

// consolePrompter reads answers line by line. Secret answers are read
// without echo when the input is a terminal.
type consolePrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newConsolePrompter(in io.Reader, out io.Writer) *consolePrompter {
	p := &consolePrompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

func (p *consolePrompter) Ask(label string, secret bool) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if secret && p.fd >= 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *consolePrompter) Confirm(question string) bool {
	answer, err := p.Ask(question+" (y/n)", false)
	return err == nil && deploy.IsYes(answer)
}

// chooseTarget shows the upload menu until a valid choice is entered.
// End of input counts as exit.
func (p *consolePrompter) chooseTarget(t Theme) (deploy.Target, error) {
	var lines []string
	for _, tgt := range deploy.Menu() {
		lines = append(lines, fmt.Sprintf("%d. %s", int(tgt), tgt.Label()))
	}
	t.banner(p.out, "Where should the menu go?", lines...)

	for {
		answer, err := p.Ask(fmt.Sprintf("Choice (1-%d)", len(lines)), false)
		if err != nil {
			return deploy.TargetExit, nil
		}
		tgt, err := deploy.ParseTarget(answer)
		if err == nil {
			return tgt, nil
		}
		fmt.Fprintln(p.out, t.Warn.Render("Invalid choice, try again."))
	}
}
