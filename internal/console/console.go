package console

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"pricescraper/internal/render"
	"pricescraper/internal/scrapeui"
	"pricescraper/lib/calendar"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"
)

// minimum Jaro-Winkler similarity for a typo to get a suggestion
const suggestThreshold = 0.7

// Component is the part of scrapeui.Component the session drives.
type Component interface {
	SelectArrivalDate(date calendar.Date)
	SelectDepartureDate(date calendar.Date)
	StartScrape()
	State() scrapeui.State
	WaitFor(ctx context.Context, cond func(scrapeui.State) bool) (scrapeui.State, error)
}

type command struct {
	name  string
	usage string
	help  string
	run   func(s *Session, ctx context.Context, args []string) (quit bool, err error)
}

var commands []command

func init() {
	commands = []command{
		{name: "arrival", usage: "arrival <YYYY-MM-DD>", help: "set the arrival date", run: (*Session).arrival},
		{name: "departure", usage: "departure <YYYY-MM-DD>", help: "set the departure date", run: (*Session).departure},
		{name: "scrape", usage: "scrape", help: "start scraping prices for the selected dates", run: (*Session).scrape},
		{name: "wait", usage: "wait", help: "wait until the latest scrape finishes", run: (*Session).wait},
		{name: "show", usage: "show", help: "print the current view", run: (*Session).show},
		{name: "html", usage: "html <path>", help: "write the current view as an html page", run: (*Session).html},
		{name: "help", usage: "help", help: "list commands", run: (*Session).help},
		{name: "quit", usage: "quit", help: "leave the session", run: (*Session).quit},
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	if name == "exit" {
		return lookup("quit")
	}
	return command{}, false
}

// Suggest returns the known command closest to name, or "" if nothing is
// close enough.
func Suggest(name string) string {
	best := ""
	bestScore := suggestThreshold
	for _, cmd := range commands {
		score := matchr.JaroWinkler(name, cmd.name, false)
		if score >= bestScore {
			best = cmd.name
			bestScore = score
		}
	}
	return best
}

// Session is a line-driven front end for a component. Output written by
// the observer (Render) and by commands is serialized.
type Session struct {
	mutex     sync.Mutex
	out       io.Writer
	component Component

	// scrapes started by this session, on top of the component's Seq at start
	baseSeq   uint64
	requested uint64
}

func NewSession(out io.Writer) *Session {
	return &Session{out: out}
}

// Render is meant to be the component observer.
func (s *Session) Render(state scrapeui.State) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_ = render.Terminal(s.out, state)
	fmt.Fprintln(s.out)
}

func (s *Session) printf(format string, args ...any) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// Run reads commands from in until EOF, `quit` or ctx is done.
func (s *Session) Run(ctx context.Context, component Component, in io.Reader) error {
	s.component = component
	initial := component.State()
	s.baseSeq = initial.Seq
	s.Render(initial)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := s.Exec(ctx, line)
			if err != nil {
				s.printf("error: %s\n", err.Error())
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command line.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])

	cmd, ok := lookup(name)
	if !ok {
		suggestion := Suggest(name)
		if suggestion != "" {
			return false, fmt.Errorf("unknown command %q, did you mean %q?", name, suggestion)
		}
		return false, fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
	return cmd.run(s, ctx, fields[1:])
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

func (s *Session) arrival(_ context.Context, args []string) (bool, error) {
	text, err := oneArg(args, "arrival <YYYY-MM-DD>")
	if err != nil {
		return false, err
	}
	date, err := calendar.Parse(text)
	if err != nil {
		return false, err
	}
	s.component.SelectArrivalDate(date)
	return false, nil
}

func (s *Session) departure(_ context.Context, args []string) (bool, error) {
	text, err := oneArg(args, "departure <YYYY-MM-DD>")
	if err != nil {
		return false, err
	}
	date, err := calendar.Parse(text)
	if err != nil {
		return false, err
	}
	s.component.SelectDepartureDate(date)
	return false, nil
}

func (s *Session) scrape(_ context.Context, _ []string) (bool, error) {
	s.requested++
	s.component.StartScrape()
	return false, nil
}

func (s *Session) wait(ctx context.Context, _ []string) (bool, error) {
	if s.requested == 0 {
		return false, fmt.Errorf("nothing to wait for, run 'scrape' first")
	}
	// the latest StartScrape may not have reached the event loop yet
	target := s.baseSeq + s.requested
	_, err := s.component.WaitFor(ctx, func(state scrapeui.State) bool {
		return state.Seq >= target && scrapeui.Settled(state)
	})
	return false, err
}

func (s *Session) show(_ context.Context, _ []string) (bool, error) {
	s.Render(s.component.State())
	return false, nil
}

func (s *Session) html(_ context.Context, args []string) (bool, error) {
	path, err := oneArg(args, "html <path>")
	if err != nil {
		return false, err
	}
	buff := &bytes.Buffer{}
	err = render.HTML(buff, s.component.State())
	if err != nil {
		return false, err
	}
	err = os.WriteFile(path, buff.Bytes(), 0644)
	if err != nil {
		return false, err
	}
	s.printf("wrote %s\n", path)
	return false, nil
}

func (s *Session) help(_ context.Context, _ []string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, cmd := range commands {
		fmt.Fprintf(s.out, "  %-24s %s\n", cmd.usage, cmd.help)
	}
	return false, nil
}

func (s *Session) quit(_ context.Context, _ []string) (bool, error) {
	return true, nil
}
