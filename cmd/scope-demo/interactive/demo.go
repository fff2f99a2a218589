// Package interactive provides the interactive command loop for
// scope-demo.
package interactive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/listenscope/listenscope-go/pkg/eventsource"
	"github.com/listenscope/listenscope-go/pkg/examples"
	"github.com/listenscope/listenscope-go/pkg/log"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// Widget names.
const (
	WidgetCounter = "counter"
	WidgetTracker = "tracker"
	WidgetAlways  = "always"
)

// Config configures a Demo.
type Config struct {
	// Logger receives scope debug output. Nil disables it.
	Logger *slog.Logger

	// TraceLogger receives every scope decision.
	TraceLogger log.Logger

	// StartEnabled sets the counter's initial enabled flag.
	StartEnabled bool
}

// widget is anything with a mount/render/unmount lifecycle.
type widget interface {
	Mount() error
	Render() error
	Unmount() error
}

type slot struct {
	build   func() widget
	current widget
	mounted bool
}

// Demo hosts the example widgets on a shared window event source.
type Demo struct {
	out      io.Writer
	config   Config
	window   *eventsource.Source
	registry *scope.Registry
	slots    map[string]*slot
}

// New creates a demo writing to out.
func New(config Config, out io.Writer) *Demo {
	d := &Demo{
		out:    out,
		config: config,
		window: eventsource.New(),
		registry: scope.NewRegistryWithConfig(scope.Config{
			Logger:      config.Logger,
			TraceLogger: config.TraceLogger,
		}),
	}
	d.slots = map[string]*slot{
		WidgetCounter: {build: func() widget {
			return examples.NewClickCounter(d.registry, examples.ClickCounterConfig{
				Target:       d.window,
				StartEnabled: d.config.StartEnabled,
				OnClick: func(total int) {
					fmt.Fprintf(d.out, "  counter: click #%d\n", total)
				},
			})
		}},
		WidgetTracker: {build: func() widget {
			return examples.NewMountTracker(d.registry, d.window)
		}},
		WidgetAlways: {build: func() widget {
			return examples.NewEveryRenderListener(d.registry, d.window)
		}},
	}
	return d
}

// Run reads commands with readline until quit, EOF or ctx is done.
func (d *Demo) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "scope> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	d.out = rl.Stdout()

	d.printHelp()

	for {
		select {
		case <-ctx.Done():
			return d.Close()
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(d.out, "Exiting...")
			cancel()
			return d.Close()
		}

		if !d.Execute(line) {
			cancel()
			return d.Close()
		}
	}
}

// Execute runs one command line. It returns false when the user asked to
// quit.
func (d *Demo) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		d.printHelp()
	case "mount", "m":
		d.each(args, d.mount)
	case "render", "r":
		d.each(args, d.render)
	case "unmount", "u":
		d.each(args, d.unmount)
	case "toggle", "t":
		d.cmdToggle()
	case "click", "c":
		d.cmdClick(args)
	case "status", "s":
		d.cmdStatus()
	case "quit", "exit", "q":
		fmt.Fprintln(d.out, "Exiting...")
		return false
	default:
		fmt.Fprintf(d.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

// Close unmounts every widget.
func (d *Demo) Close() error {
	return d.registry.DisposeAll()
}

// each applies fn to the named widgets, or to all of them.
func (d *Demo) each(args []string, fn func(name string, s *slot) error) {
	names := args
	if len(names) == 0 || (len(names) == 1 && names[0] == "all") {
		names = d.names()
	}
	for _, name := range names {
		s, ok := d.slots[name]
		if !ok {
			fmt.Fprintf(d.out, "Unknown widget: %s (counter, tracker, always)\n", name)
			continue
		}
		if err := fn(name, s); err != nil {
			fmt.Fprintf(d.out, "  %s: error: %v\n", name, err)
		}
	}
}

func (d *Demo) mount(name string, s *slot) error {
	if s.mounted {
		fmt.Fprintf(d.out, "  %s: already mounted\n", name)
		return nil
	}
	s.current = s.build()
	if err := s.current.Mount(); err != nil {
		return err
	}
	s.mounted = true
	fmt.Fprintf(d.out, "  %s: mounted\n", name)
	return nil
}

func (d *Demo) render(name string, s *slot) error {
	if !s.mounted {
		fmt.Fprintf(d.out, "  %s: not mounted\n", name)
		return nil
	}
	if err := s.current.Render(); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "  %s: rendered\n", name)
	return nil
}

func (d *Demo) unmount(name string, s *slot) error {
	if !s.mounted {
		fmt.Fprintf(d.out, "  %s: not mounted\n", name)
		return nil
	}
	s.mounted = false
	if err := s.current.Unmount(); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "  %s: unmounted\n", name)
	return nil
}

func (d *Demo) cmdToggle() {
	s := d.slots[WidgetCounter]
	if !s.mounted {
		fmt.Fprintln(d.out, "  counter: not mounted")
		return
	}
	counter := s.current.(*examples.ClickCounter)
	if err := counter.Toggle(); err != nil {
		fmt.Fprintf(d.out, "  counter: error: %v\n", err)
		return
	}
	fmt.Fprintf(d.out, "  counter: enabled=%v\n", counter.Enabled())
}

func (d *Demo) cmdClick(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintf(d.out, "Invalid click count: %s\n", args[0])
			return
		}
		n = v
	}
	for range n {
		delivered := d.window.Dispatch(examples.ClickEvent, nil)
		fmt.Fprintf(d.out, "click -> %d handler(s)\n", delivered)
	}
}

func (d *Demo) cmdStatus() {
	fmt.Fprintf(d.out, "Window: %d click handler(s), %d binding(s) across %d owner(s)\n",
		d.window.Count(examples.ClickEvent), d.registry.Count(), len(d.registry.Owners()))

	for _, name := range d.names() {
		s := d.slots[name]
		if !s.mounted {
			fmt.Fprintf(d.out, "  %-8s unmounted\n", name)
			continue
		}
		switch w := s.current.(type) {
		case *examples.ClickCounter:
			fmt.Fprintf(d.out, "  %-8s mounted, enabled=%v clicks=%d renders=%d\n",
				name, w.Enabled(), w.Clicks(), w.Renders())
		case *examples.MountTracker:
			fmt.Fprintf(d.out, "  %-8s mounted, clicks=%d\n", name, w.Clicks())
		case *examples.EveryRenderListener:
			fmt.Fprintf(d.out, "  %-8s mounted, handlers=%d delivered=%d\n",
				name, w.Handlers(), w.Delivered())
		}
	}
}

func (d *Demo) names() []string {
	names := make([]string, 0, len(d.slots))
	for name := range d.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Demo) printHelp() {
	fmt.Fprintln(d.out, `
Scope Demo Commands:
  Widgets (counter, tracker, always; default all):
    mount [widget...]    - Mount widgets and render them once
    render [widget...]   - Re-render mounted widgets
    unmount [widget...]  - Unmount widgets and release their listeners
    toggle               - Flip the counter's enabled flag

  Window:
    click [n]            - Dispatch n click events (default 1)
    status               - Show registered handlers and widget state

  Other:
    help                 - Show this help
    quit                 - Exit`)
}
