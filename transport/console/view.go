package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/megatictactoe/internal/entity"
)

const (
	emptyMark      = "."
	cellSeparator  = " "
	boardSeparator = " | "

	// width of one rendered row: three segments of "a b c"
	rowWidth = 3*5 + 2*len(boardSeparator)
)

// Render writes the outer grid row by row followed by the player to move.
// A claimed mini-board is drawn filled with its owner's mark.
func Render(w io.Writer, state *entity.GameState) error {
	var view strings.Builder

	rule := strings.Repeat("-", rowWidth)

	for boardRow := 0; boardRow < 3; boardRow++ {
		if boardRow > 0 {
			view.WriteString(rule + "\n")
		}

		for cellRow := 0; cellRow < 3; cellRow++ {
			segments := make([]string, 0, 3)
			for boardCol := 0; boardCol < 3; boardCol++ {
				segments = append(segments, renderSegment(&state.Boards[boardRow*3+boardCol], cellRow))
			}

			view.WriteString(strings.Join(segments, boardSeparator) + "\n")
		}
	}

	fmt.Fprintf(&view, "turn: %s\n", state.CurrentPlayer())

	if _, err := io.WriteString(w, view.String()); err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	return nil
}

func renderSegment(miniBoard *entity.MiniBoard, cellRow int) string {
	marks := make([]string, 0, 3)
	for cellCol := 0; cellCol < 3; cellCol++ {
		marks = append(marks, mark(miniBoard, cellRow*3+cellCol))
	}

	return strings.Join(marks, cellSeparator)
}

func mark(miniBoard *entity.MiniBoard, cell int) string {
	if miniBoard.Status.IsClaimed() {
		return string(miniBoard.Status.Owner)
	}

	if occupant := miniBoard.Cells[cell].Occupant; occupant != entity.NoPlayer {
		return string(occupant)
	}

	return emptyMark
}
