package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scroll-agent/internal/config"
	"scroll-agent/internal/entity"
	"scroll-agent/internal/scroll"
	"scroll-agent/internal/usecase"
	"scroll-agent/pkg/logg"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Interface struct {
	config   *config.Config
	logger   *zap.Logger
	usecase  *usecase.Service
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	return &Interface{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase:  params.Usecase,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  sigChan,
		stopping: false,
	}
}

func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	signal.Notify(i.sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-i.sigChan
		fmt.Println("\n\nInterrupt received, shutting down...")
		i.stopping = true
		i.Stop()
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if i.stopping {
			break
		}

		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				break
			}

			i.logger.Error("Command error", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

func (i *Interface) Stop() error {
	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")

	i.cancel()

	fmt.Println("Goodbye!")
	os.Exit(0)

	return nil
}

func (i *Interface) handleCommand(input string) error {
	fields := strings.Fields(input)

	switch fields[0] {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Println("Shutting down...")

		return fmt.Errorf("exit")
	case "open":
		if len(fields) != 2 {
			return fmt.Errorf("usage: open <url>")
		}

		return i.usecase.Browser.Navigate(i.ctx, fields[1])
	case "scrollables":
		return i.listScrollables()
	case "scroll":
		return i.executeScroll(fields[1:])
	default:
		return fmt.Errorf("unknown command %q, type 'help' for the command list", fields[0])
	}
}

func (i *Interface) executeScroll(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: scroll <selector> [top|bottom | <block> [inline]]")
	}

	selector := args[0]

	opts, err := parseScrollOptions(args[1:])
	if err != nil {
		return err
	}

	record, err := i.usecase.Scroll.ScrollTo(i.ctx, selector, opts)
	if err != nil {
		fmt.Printf("Scroll failed: %v\n", err)

		return nil
	}

	fmt.Printf("Scrolled %s into view (record %s, took %s)\n",
		record.Selector, record.ID, record.CompletedAt.Sub(record.StartedAt).Round(time.Millisecond))

	return nil
}

// parseScrollOptions maps console arguments onto the options union:
// "top"/"bottom" become the boolean shorthand, alignment words become
// the alignment record, nothing at all keeps the default.
func parseScrollOptions(args []string) (scroll.Options, error) {
	if len(args) == 0 {
		return nil, nil
	}

	switch args[0] {
	case "top":
		return scroll.AlignFlag(true), nil
	case "bottom":
		return scroll.AlignFlag(false), nil
	}

	block, err := parseAlignment(args[0])
	if err != nil {
		return nil, err
	}

	opts := scroll.WebOptions{Block: block}

	if len(args) > 1 {
		inline, err := parseAlignment(args[1])
		if err != nil {
			return nil, err
		}
		opts.Inline = inline
	}

	return opts, nil
}

func parseAlignment(value string) (entity.Alignment, error) {
	switch entity.Alignment(value) {
	case entity.AlignStart, entity.AlignCenter, entity.AlignEnd, entity.AlignNearest:
		return entity.Alignment(value), nil
	default:
		return "", fmt.Errorf("invalid alignment %q: use start, center, end or nearest", value)
	}
}

func (i *Interface) listScrollables() error {
	candidates, err := i.usecase.Browser.ScrollableCandidates(i.ctx)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Println("No scrollable containers found on the current page.")

		return nil
	}

	fmt.Printf("Scrollable containers (%d):\n", len(candidates))

	for _, c := range candidates {
		fmt.Printf("  %-10s %-40s at (%.0f, %.0f) size %.0fx%.0f\n",
			c.Tag, c.Selector, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
	}

	return nil
}

func (i *Interface) printBanner() {
	banner := `
==========================================
  scroll-agent - element scrolling shell
==========================================
`
	fmt.Println(banner)
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  open <url>                          - Navigate the browser to a URL
  scroll <selector>                   - Scroll first match into view (block: start)
  scroll <selector> top|bottom        - Boolean shorthand alignment
  scroll <selector> <block> [inline]  - Explicit alignment (start|center|end|nearest)
  scrollables                         - List scrollable containers on the page
  help, h                             - Show this help message
  exit, quit, q                       - Exit the application
`
	fmt.Println(help)
}
