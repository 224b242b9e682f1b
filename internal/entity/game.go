package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/megatictactoe/internal/apperror"
)

const (
	// BoardCount is the number of mini-boards on the outer grid.
	BoardCount = 9
	// CellCount is the number of cells inside one mini-board.
	CellCount = 9
)

type Player string

const (
	PlayerX  Player = "X"
	PlayerO  Player = "O"
	NoPlayer Player = ""
)

// Opponent returns the player who moves after that.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Cell struct {
	Occupant Player `json:"occupant,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Occupant == NoPlayer
}

type BoardState string

const (
	StateUnclaimed BoardState = "unclaimed"
	StateClaimed   BoardState = "claimed"
	StateDrawn     BoardState = "drawn"
)

// MiniBoardStatus is the cached outcome of a mini-board. Owner is set only when State is StateClaimed.
type MiniBoardStatus struct {
	State BoardState `json:"state"`
	Owner Player     `json:"owner,omitempty"`
}

func Unclaimed() MiniBoardStatus {
	return MiniBoardStatus{State: StateUnclaimed}
}

func Claimed(owner Player) MiniBoardStatus {
	return MiniBoardStatus{State: StateClaimed, Owner: owner}
}

func Drawn() MiniBoardStatus {
	return MiniBoardStatus{State: StateDrawn}
}

func (that MiniBoardStatus) IsUnclaimed() bool {
	return that.State == StateUnclaimed
}

func (that MiniBoardStatus) IsClaimed() bool {
	return that.State == StateClaimed
}

func (that MiniBoardStatus) IsDrawn() bool {
	return that.State == StateDrawn
}

func (that MiniBoardStatus) String() string {
	if that.IsClaimed() {
		return fmt.Sprintf("%s(%s)", that.State, that.Owner)
	}
	return string(that.State)
}

type MiniBoard struct {
	Cells  [CellCount]Cell `json:"cells"`
	Status MiniBoardStatus `json:"status"`
}

// Occupants returns the occupant of every cell in row-major order.
func (that *MiniBoard) Occupants() [CellCount]Player {
	var occupants [CellCount]Player
	for i, cell := range that.Cells {
		occupants[i] = cell.Occupant
	}
	return occupants
}

func (that *MiniBoard) IsFull() bool {
	for _, cell := range that.Cells {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}

// GameState is the whole nested game. Mutate it only through the rule engine so that
// the cached mini-board statuses and the turn stay consistent with the cells.
type GameState struct {
	ID     string                `json:"id"`
	Boards [BoardCount]MiniBoard `json:"boards"`
	Turn   Player                `json:"turn"`
	Moves  int                   `json:"moves"`
}

func NewGameState() *GameState {
	state := &GameState{
		ID:   uuid.NewString(),
		Turn: PlayerX,
	}

	for i := range state.Boards {
		state.Boards[i].Status = Unclaimed()
	}

	return state
}

// OccupantAt reports who holds the given cell. NoPlayer means the cell is empty.
func (that *GameState) OccupantAt(board, cell int) (Player, error) {
	if err := ValidateIndices(board, cell); err != nil {
		return NoPlayer, err
	}

	return that.Boards[board].Cells[cell].Occupant, nil
}

func (that *GameState) CurrentPlayer() Player {
	return that.Turn
}

func (that *GameState) StatusOf(board int) (MiniBoardStatus, error) {
	if err := validateIndex("board", board, BoardCount); err != nil {
		return MiniBoardStatus{}, err
	}

	return that.Boards[board].Status, nil
}

// Playable reports whether moves into the given mini-board can be accepted.
func (that *GameState) Playable(board int) bool {
	status, err := that.StatusOf(board)
	if err != nil {
		return false
	}
	return status.IsUnclaimed()
}

// Clone returns a deep copy that shares nothing with that.
func (that *GameState) Clone() *GameState {
	clone := *that
	return &clone
}

func ValidateIndices(board, cell int) error {
	if err := validateIndex("board", board, BoardCount); err != nil {
		return err
	}

	return validateIndex("cell", cell, CellCount)
}

func validateIndex(name string, index, limit int) error {
	if index < 0 || index >= limit {
		return fmt.Errorf("%w: %s %d", apperror.ErrIndexOutOfRange, name, index)
	}
	return nil
}
