package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Bold(true)
)

type CLI struct {
	Config string `short:"c" help:"Path to the table config file" default:"holdem.hcl" type:"path"`
	Seed   int64  `help:"RNG seed for reproducible games (0 seeds from the clock)"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "table",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := game.LoadConfig(cli.Config)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", "error", err)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Print(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	printer := newLogPrinter()
	table := game.New(cfg,
		game.WithLogger(logger),
		game.WithRand(randutil.New(seed)),
		game.WithObserver(printer.observe),
	)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println()
		os.Exit(0)
	}()

	table.Start()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		action, amount, err := parseCommand(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if !table.SubmitHumanAction(action, amount) {
			fmt.Println("Action rejected, try again.")
		}
	}

	ctx.Exit(0)
}

// parseCommand parses input such as "call" or "raise 60".
func parseCommand(line string) (game.Action, int, error) {
	fields := strings.Fields(line)
	action, err := game.ParseAction(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unknown action %q (fold/check/call/bet <n>/raise <n>)", fields[0])
	}

	amount := 0
	if len(fields) > 1 {
		amount, err = strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid amount %q", fields[1])
		}
	}
	if (action == game.ActionBet || action == game.ActionRaise) && amount <= 0 {
		return 0, 0, fmt.Errorf("%s needs an amount, e.g. %q", action, action.String()+" 60")
	}

	return action, amount, nil
}

// logPrinter echoes new table log lines to stdout. Snapshots carry a rolling
// tail of the log, so it anchors on the last line it printed to avoid
// repeating entries.
type logPrinter struct {
	mu       sync.Mutex
	lastLine string
}

func newLogPrinter() *logPrinter {
	return &logPrinter{}
}

func (lp *logPrinter) observe(snap game.Snapshot) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lines := snap.Log
	start := 0
	if lp.lastLine != "" {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] == lp.lastLine {
				start = i + 1
				break
			}
		}
	}
	for _, l := range lines[start:] {
		fmt.Println(l)
	}
	if len(lines) > 0 {
		lp.lastLine = lines[len(lines)-1]
	}

	for _, seat := range snap.Seats {
		if seat.Human && seat.Turn {
			fmt.Printf("[chips %d, pot %d, %d to call] your move: ", seat.Chips, snap.Pot, snap.CurrentBet-seat.RoundBet)
		}
	}
}
