// Package console is a line-oriented host for the navigator: it reads one
// command per line and prints the panels, search results and commits.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog/navigator/internal/domain"
	"catalog/navigator/internal/navigator"

	log "github.com/sirupsen/logrus"
)

const prompt = "> "

const helpText = `commands:
  open                   load the categories and open the navigator
  close                  dismiss the navigator without selecting
  hover <id>             expand a category on one of the visible panels
  filter <level> [term]  filter one panel by name, blank term clears it
  search [term]          search the whole tree, blank term goes back to the panels
  reveal <n>             show the n-th search result in the panels
  select <id>            commit a category
  panels                 print the panels
  state                  print the session state as JSON
  help                   print this help
  quit                   leave`

var errQuit = errors.New("quit")

// Host opens sessions and commits their selections
type Host interface {
	Open(ctx context.Context) (*navigator.Controller, error)
	Commit(ctx context.Context, controller *navigator.Controller, node *domain.CategoryNode) (domain.Selection, error)
}

type Console struct {
	host            Host
	out             io.Writer
	suggestionLimit int
	controller      *navigator.Controller
}

func New(host Host, out io.Writer, suggestionLimit int) *Console {
	return &Console{host: host, out: out, suggestionLimit: suggestionLimit}
}

// Run executes commands from in until it is exhausted, quit is entered or ctx is done
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.print(prompt)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.Execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.println("error: " + err.Error())
		}
		c.print(prompt)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	return nil
}

// Execute runs a single command line
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	log.Debugf("Console command %q args=%v", command, args)

	switch command {
	case "help":
		c.println(helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "open":
		return c.open(ctx)
	}

	if c.controller == nil || !c.controller.IsOpen() {
		return navigator.ErrNotOpen
	}

	switch command {
	case "close":
		c.controller.Close()
		c.println("closed")
	case "hover":
		return c.hover(args)
	case "filter":
		return c.filter(args)
	case "search":
		return c.search(strings.Join(args, " "))
	case "reveal":
		return c.reveal(args)
	case "select":
		return c.selectCategory(ctx, args)
	case "panels":
		c.println(RenderPanels(c.controller))
	case "state":
		return c.state()
	default:
		return fmt.Errorf("unknown command %q (try help)", command)
	}
	return nil
}

func (c *Console) open(ctx context.Context) error {
	controller, err := c.host.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open navigator: %w", err)
	}
	c.controller = controller
	c.println(RenderPanels(controller))
	return nil
}

// hover finds the category on the visible panels and expands it
func (c *Console) hover(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hover <id>")
	}
	id := domain.CategoryID(args[0])
	for level := 0; level < c.controller.VisibleLevels(); level++ {
		for _, node := range c.controller.Level(level) {
			if node.ID == id {
				c.controller.Hover(node, level)
				c.println(RenderPanels(c.controller))
				return nil
			}
		}
	}
	return fmt.Errorf("category %s is not on a visible panel", id)
}

func (c *Console) filter(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: filter <level> [term]")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid level %q: %w", args[0], err)
	}
	if err := c.controller.SetPanelSearch(level, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	c.println(RenderPanels(c.controller))
	return nil
}

func (c *Console) search(term string) error {
	if err := c.controller.SetSearchTerm(term); err != nil {
		return err
	}
	if c.controller.Mode() != navigator.ModeSearching {
		c.println(RenderPanels(c.controller))
		return nil
	}
	c.println(RenderResults(c.controller.SearchResults(), c.controller.Suggestions(c.suggestionLimit)))
	return nil
}

func (c *Console) reveal(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reveal <n>")
	}
	if c.controller.Mode() != navigator.ModeSearching {
		return fmt.Errorf("no search results to reveal")
	}
	n, err := strconv.Atoi(args[0])
	matches := c.controller.SearchResults().Matches
	if err != nil || n < 1 || n > len(matches) {
		return fmt.Errorf("result %q does not exist", args[0])
	}
	if _, err := c.controller.Reveal(matches[n-1].Node.ID); err != nil {
		return err
	}
	c.println(RenderPanels(c.controller))
	return nil
}

func (c *Console) selectCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <id>")
	}
	node, ok := c.controller.Catalog().Lookup(domain.CategoryID(args[0]))
	if !ok {
		return fmt.Errorf("category %s does not exist", args[0])
	}
	selection, err := c.host.Commit(ctx, c.controller, node)
	if selection.Node != nil {
		c.println("selected: " + selection.Breadcrumb)
	}
	return err
}

func (c *Console) state() error {
	data, err := json.MarshalIndent(c.controller.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	c.println(string(data))
	return nil
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}
