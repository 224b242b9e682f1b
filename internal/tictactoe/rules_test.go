package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/megatictactoe/internal/apperror"
	"github.com/rocketscienceinc/megatictactoe/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.NoPlayer
)

// playMoves applies moves that are all expected to be accepted.
func playMoves(t *testing.T, state *entity.GameState, moves [][2]int) []MoveResult {
	t.Helper()

	results := make([]MoveResult, 0, len(moves))
	for i, move := range moves {
		result, err := ApplyMove(state, move[0], move[1])
		require.NoError(t, err, "move %d %v", i, move)
		results = append(results, result)
	}

	return results
}

func TestApplyMove(t *testing.T) {
	t.Run("Places mark and toggles turn", func(t *testing.T) {
		// Given: a new game
		state := entity.NewGameState()

		// When: X selects cell 4 of board 8
		result, err := ApplyMove(state, 8, 4)
		require.NoError(t, err)

		// Then: the cell holds X, O moves next and the board is still unclaimed
		assert.Equal(t, MoveResult{Board: 8, Cell: 4, Player: x, Status: entity.Unclaimed()}, result)
		occupant, err := state.OccupantAt(8, 4)
		require.NoError(t, err)
		assert.Equal(t, x, occupant)
		assert.Equal(t, o, state.CurrentPlayer())
		assert.Equal(t, 1, state.Moves)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where X holds cell 0 of board 3
		state := entity.NewGameState()
		playMoves(t, state, [][2]int{{3, 0}})
		expected := state.Clone()

		// When: O selects the same cell
		result, err := ApplyMove(state, 3, 0)

		// Then: the move is rejected and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MoveResult{}, result)
		require.Equal(t, expected, state)
	})

	t.Run("Repeated rejections never change state", func(t *testing.T) {
		// Given: a game with a few moves
		state := entity.NewGameState()
		playMoves(t, state, [][2]int{{0, 0}, {1, 1}, {2, 2}})
		expected := state.Clone()

		// When: every occupied cell is selected again, twice
		for i := 0; i < 2; i++ {
			for _, move := range [][2]int{{0, 0}, {1, 1}, {2, 2}} {
				_, err := ApplyMove(state, move[0], move[1])
				require.ErrorIs(t, err, apperror.ErrCellOccupied)
			}
		}

		// Then: cells and turn are exactly as before
		require.Equal(t, expected, state)
	})

	t.Run("Error on out of range indices", func(t *testing.T) {
		state := entity.NewGameState()
		expected := state.Clone()

		for _, move := range [][2]int{{-1, 0}, {9, 0}, {0, -1}, {0, 9}, {20, 20}} {
			_, err := ApplyMove(state, move[0], move[1])
			assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange, "move %v", move)
		}

		require.Equal(t, expected, state)
	})

	t.Run("Error on claimed mini-board", func(t *testing.T) {
		// Given: board 0 claimed by X
		state := entity.NewGameState()
		playMoves(t, state, [][2]int{{0, 0}, {0, 1}, {0, 3}, {0, 4}, {0, 6}})
		expected := state.Clone()

		// When: O selects every remaining empty cell of board 0
		for _, cell := range []int{2, 5, 7, 8} {
			_, err := ApplyMove(state, 0, cell)

			// Then: each move is rejected
			require.ErrorIs(t, err, apperror.ErrMiniBoardNotPlayable, "cell %d", cell)
		}

		// Then: nothing changed
		require.Equal(t, expected, state)
	})

	t.Run("Error on mini-board left in drawn status", func(t *testing.T) {
		// Given: a board whose status was forced to drawn
		state := entity.NewGameState()
		state.Boards[4].Status = entity.Drawn()

		// When: X selects a cell in it
		_, err := ApplyMove(state, 4, 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrMiniBoardNotPlayable)
		assert.Equal(t, x, state.CurrentPlayer())
	})

	t.Run("Range is checked before playability and occupancy", func(t *testing.T) {
		state := entity.NewGameState()
		state.Boards[0].Status = entity.Claimed(o)
		state.Boards[0].Cells[0].Occupant = o

		_, err := ApplyMove(state, 0, 9)
		require.ErrorIs(t, err, apperror.ErrIndexOutOfRange)

		_, err = ApplyMove(state, 0, 0)
		require.ErrorIs(t, err, apperror.ErrMiniBoardNotPlayable)
	})
}

func TestApplyMove_TurnAlternation(t *testing.T) {
	// Given: a new game
	state := entity.NewGameState()
	require.Equal(t, x, state.CurrentPlayer())

	// When: 45 legal moves are spread over all boards without completing a line
	for n := 0; n < 45; n++ {
		_, err := ApplyMove(state, n%entity.BoardCount, n/entity.BoardCount)
		require.NoError(t, err, "move %d", n)

		// Then: after n+1 accepted moves the turn is X when n+1 is even, O otherwise
		if (n+1)%2 == 0 {
			require.Equal(t, x, state.CurrentPlayer(), "after %d moves", n+1)
		} else {
			require.Equal(t, o, state.CurrentPlayer(), "after %d moves", n+1)
		}

		// Then: rejected moves in between do not advance the turn
		before := state.CurrentPlayer()
		_, err = ApplyMove(state, n%entity.BoardCount, n/entity.BoardCount)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, before, state.CurrentPlayer())
	}

	assert.Equal(t, 45, state.Moves)
}

func TestApplyMove_ClaimScenario(t *testing.T) {
	// Given: a new game
	state := entity.NewGameState()

	// When: X completes the left column of board 0 on the fifth move
	results := playMoves(t, state, [][2]int{{0, 0}, {0, 1}, {0, 3}, {0, 4}, {0, 6}})

	// Then: board 0 is claimed by X only after the fifth move, and O moves next
	for _, result := range results[:4] {
		assert.Equal(t, entity.Unclaimed(), result.Status)
	}
	assert.Equal(t, entity.Claimed(x), results[4].Status)

	status, err := state.StatusOf(0)
	require.NoError(t, err)
	assert.Equal(t, entity.Claimed(x), status)
	assert.Equal(t, o, state.CurrentPlayer())
	assert.False(t, state.Playable(0))
}

func TestApplyMove_DrawResetScenario(t *testing.T) {
	// Given: a new game
	state := entity.NewGameState()

	// When: board 1 is filled as X O X / X O O / O X X by alternating moves
	results := playMoves(t, state, [][2]int{
		{1, 0}, {1, 1}, {1, 2}, {1, 4}, {1, 3}, {1, 5}, {1, 7}, {1, 6}, {1, 8},
	})

	// Then: no earlier move resolved the board
	for _, result := range results[:8] {
		assert.Equal(t, entity.Unclaimed(), result.Status)
		assert.False(t, result.DrawReset)
	}

	// Then: the ninth move draws it and the board is immediately reset
	last := results[8]
	assert.Equal(t, entity.Drawn(), last.Status)
	assert.True(t, last.DrawReset)

	status, err := state.StatusOf(1)
	require.NoError(t, err)
	assert.Equal(t, entity.Unclaimed(), status)
	for cell := 0; cell < entity.CellCount; cell++ {
		occupant, err := state.OccupantAt(1, cell)
		require.NoError(t, err)
		assert.Equal(t, e, occupant, "cell %d", cell)
	}

	// Then: the turn advanced for all nine moves and the board can be played again
	assert.Equal(t, o, state.CurrentPlayer())
	assert.Equal(t, 9, state.Moves)

	result, err := ApplyMove(state, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, o, result.Player)
}

func TestEvaluateMiniBoard(t *testing.T) {
	lines := map[string][3]int{
		"left column":   {0, 3, 6},
		"middle column": {1, 4, 7},
		"right column":  {2, 5, 8},
		"top row":       {0, 1, 2},
		"middle row":    {3, 4, 5},
		"bottom row":    {6, 7, 8},
		"main diagonal": {0, 4, 8},
		"anti diagonal": {2, 4, 6},
	}

	for name, line := range lines {
		for _, player := range []entity.Player{x, o} {
			t.Run(name+" "+string(player), func(t *testing.T) {
				// Given: a board where only the line is occupied
				var cells [entity.CellCount]entity.Player
				for _, idx := range line {
					cells[idx] = player
				}

				// When: evaluating it
				winner := EvaluateMiniBoard(cells)

				// Then: the line's owner wins
				assert.Equal(t, player, winner)
			})
		}
	}

	t.Run("Full board without a line", func(t *testing.T) {
		cells := [entity.CellCount]entity.Player{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		assert.Equal(t, e, EvaluateMiniBoard(cells))
	})

	t.Run("Empty board", func(t *testing.T) {
		assert.Equal(t, e, EvaluateMiniBoard([entity.CellCount]entity.Player{}))
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		cells := [entity.CellCount]entity.Player{
			x, x, o,
			e, e, e,
			e, e, e,
		}

		assert.Equal(t, e, EvaluateMiniBoard(cells))
	})

	t.Run("First column in scan order wins on malformed input", func(t *testing.T) {
		// Given: X holds the left column and O holds the right column
		cells := [entity.CellCount]entity.Player{
			x, e, o,
			x, e, o,
			x, e, o,
		}

		// Then: the left column is scanned first
		assert.Equal(t, x, EvaluateMiniBoard(cells))

		cells = [entity.CellCount]entity.Player{
			o, e, x,
			o, e, x,
			o, e, x,
		}
		assert.Equal(t, o, EvaluateMiniBoard(cells))
	})

	t.Run("First row in scan order wins on malformed input", func(t *testing.T) {
		cells := [entity.CellCount]entity.Player{
			o, o, o,
			e, e, e,
			x, x, x,
		}

		assert.Equal(t, o, EvaluateMiniBoard(cells))
	})
}

func TestPostMoveTransition(t *testing.T) {
	t.Run("Claims board on a completed line", func(t *testing.T) {
		board := &entity.MiniBoard{Status: entity.Unclaimed()}
		board.Cells[2].Occupant = o
		board.Cells[4].Occupant = o
		board.Cells[6].Occupant = o

		status := PostMoveTransition(board)

		assert.Equal(t, entity.Claimed(o), status)
		assert.Equal(t, entity.Claimed(o), board.Status)
	})

	t.Run("Marks full board without line as drawn", func(t *testing.T) {
		board := &entity.MiniBoard{Status: entity.Unclaimed()}
		for i, player := range []entity.Player{x, o, x, x, o, o, o, x, x} {
			board.Cells[i].Occupant = player
		}

		status := PostMoveTransition(board)

		assert.Equal(t, entity.Drawn(), status)
		assert.Equal(t, entity.Drawn(), board.Status)
	})

	t.Run("Keeps partial board unclaimed", func(t *testing.T) {
		board := &entity.MiniBoard{Status: entity.Unclaimed()}
		board.Cells[0].Occupant = x

		assert.Equal(t, entity.Unclaimed(), PostMoveTransition(board))
	})

	t.Run("Claimed board stays claimed", func(t *testing.T) {
		// Given: a board claimed by X whose cells now show an O line
		board := &entity.MiniBoard{Status: entity.Claimed(x)}
		board.Cells[0].Occupant = o
		board.Cells[1].Occupant = o
		board.Cells[2].Occupant = o

		// When: recomputing
		status := PostMoveTransition(board)

		// Then: the claim is never overwritten
		assert.Equal(t, entity.Claimed(x), status)
	})
}

func TestApplyDrawnReset(t *testing.T) {
	// Given: a drawn board
	board := &entity.MiniBoard{Status: entity.Drawn()}
	for i, player := range []entity.Player{x, o, x, x, o, o, o, x, x} {
		board.Cells[i].Occupant = player
	}

	// When: resetting it
	ApplyDrawnReset(board)

	// Then: it looks like it was never played
	require.Equal(t, &entity.MiniBoard{Status: entity.Unclaimed()}, board)
}
