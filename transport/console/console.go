package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/megatictactoe/internal/entity"
	"github.com/rocketscienceinc/megatictactoe/internal/tictactoe"
)

const quitCommand = "quit"

var errMalformedMove = errors.New("expected \"<board> <cell>\"")

type gameManagerDep interface {
	Select(ctx context.Context, board, cell int) (tictactoe.MoveResult, error)
	Snapshot() *entity.GameState
}

// Console reads moves line by line and redraws the game after each accepted one.
type Console struct {
	logger  *slog.Logger
	manager gameManagerDep

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, manager gameManagerDep, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		manager: manager,

		in:  in,
		out: out,
	}
}

// Run - plays until the input ends, quit is entered or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	if err := Render(that.out, that.manager.Snapshot()); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	lines, readErr := that.readLines(done)

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, stopping console")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				log.Info("input closed, stopping console")
				return nil
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if line == quitCommand {
				log.Info("quit requested")
				return nil
			}

			if err := that.handle(ctx, log, line); err != nil {
				return err
			}
		}
	}
}

func (that *Console) handle(ctx context.Context, log *slog.Logger, line string) error {
	board, cell, err := ParseMove(line)
	if err != nil {
		log.Debug("ignoring input", "line", line, "error", err)
		return nil
	}

	// rejected moves change nothing, so there is nothing to redraw
	if _, err = that.manager.Select(ctx, board, cell); err != nil {
		return nil
	}

	return Render(that.out, that.manager.Snapshot())
}

// readLines - scans in on its own goroutine so Run can also watch ctx.
func (that *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

// ParseMove parses "<board> <cell>". Range checks are left to the rule engine.
func ParseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errMalformedMove
	}

	board, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid board: %w", err)
	}

	cell, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell: %w", err)
	}

	return board, cell, nil
}
