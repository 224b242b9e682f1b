package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/megatictactoe/internal/apperror"
	"github.com/rocketscienceinc/megatictactoe/internal/entity"
)

// WinLines lists the winning lines of a mini-board in scan order:
// columns, then rows, then the two diagonals.
var WinLines = [8][3]int{
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MoveResult describes an accepted move.
type MoveResult struct {
	Board  int                    `json:"board"`
	Cell   int                    `json:"cell"`
	Player entity.Player          `json:"player"`
	Status entity.MiniBoardStatus `json:"status"`

	// DrawReset is set when the move filled the mini-board without a line and it was cleared.
	DrawReset bool `json:"draw_reset,omitempty"`
}

// ApplyMove places the current player's mark and runs the mini-board transition.
// A rejected move returns an error wrapping an apperror sentinel and leaves state untouched.
func ApplyMove(state *entity.GameState, board, cell int) (MoveResult, error) {
	if err := validateMove(state, board, cell); err != nil {
		return MoveResult{}, fmt.Errorf("invalid move: %w", err)
	}

	player := state.Turn
	miniBoard := &state.Boards[board]

	miniBoard.Cells[cell].Occupant = player
	state.Turn = player.Opponent()
	state.Moves++

	result := MoveResult{
		Board:  board,
		Cell:   cell,
		Player: player,
		Status: PostMoveTransition(miniBoard),
	}

	if result.Status.IsDrawn() {
		ApplyDrawnReset(miniBoard)
		result.DrawReset = true
	}

	return result, nil
}

// validateMove - checks indices, then the mini-board, then the cell.
func validateMove(state *entity.GameState, board, cell int) error {
	if err := entity.ValidateIndices(board, cell); err != nil {
		return err
	}

	miniBoard := &state.Boards[board]

	if !miniBoard.Status.IsUnclaimed() {
		return fmt.Errorf("%w: board %d is %s", apperror.ErrMiniBoardNotPlayable, board, miniBoard.Status)
	}

	if !miniBoard.Cells[cell].IsEmpty() {
		return fmt.Errorf("%w: board %d cell %d", apperror.ErrCellOccupied, board, cell)
	}

	return nil
}

// EvaluateMiniBoard returns the owner of the first complete line in scan order, or NoPlayer.
func EvaluateMiniBoard(cells [entity.CellCount]entity.Player) entity.Player {
	for _, line := range WinLines {
		a, b, c := cells[line[0]], cells[line[1]], cells[line[2]]
		if a != entity.NoPlayer && a == b && b == c {
			return a
		}
	}

	return entity.NoPlayer
}

// PostMoveTransition recomputes and stores the status of a mini-board after one of its cells changed.
func PostMoveTransition(miniBoard *entity.MiniBoard) entity.MiniBoardStatus {
	// claims are terminal
	if miniBoard.Status.IsClaimed() {
		return miniBoard.Status
	}

	switch winner := EvaluateMiniBoard(miniBoard.Occupants()); {
	case winner != entity.NoPlayer:
		miniBoard.Status = entity.Claimed(winner)
	case miniBoard.IsFull():
		miniBoard.Status = entity.Drawn()
	default:
		miniBoard.Status = entity.Unclaimed()
	}

	return miniBoard.Status
}

// ApplyDrawnReset clears a drawn mini-board so it can be played again.
func ApplyDrawnReset(miniBoard *entity.MiniBoard) {
	for i := range miniBoard.Cells {
		miniBoard.Cells[i].Occupant = entity.NoPlayer
	}

	miniBoard.Status = entity.Unclaimed()
}
