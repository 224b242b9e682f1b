package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/megatictactoe/internal/apperror"
	"github.com/rocketscienceinc/megatictactoe/internal/entity"
)

const namespace = "megatictactoe"

const (
	ResultAccepted = "accepted"

	ReasonIndexOutOfRange = "index_out_of_range"
	ReasonCellOccupied    = "cell_occupied"
	ReasonNotPlayable     = "mini_board_not_playable"
	ReasonUnknown         = "unknown"
)

type Metrics struct {
	Moves      *prometheus.CounterVec
	Claims     *prometheus.CounterVec
	DrawResets prometheus.Counter
}

// New registers the game counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	that := &Metrics{
		Moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Selected cells by result: accepted or the rejection reason.",
		}, []string{"result"}),
		Claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mini_board_claims_total",
			Help:      "Mini-boards claimed, by player.",
		}, []string{"player"}),
		DrawResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mini_board_draw_resets_total",
			Help:      "Mini-boards filled without a line and cleared.",
		}),
	}

	reg.MustRegister(that.Moves, that.Claims, that.DrawResets)

	return that
}

func (that *Metrics) MoveAccepted() {
	that.Moves.WithLabelValues(ResultAccepted).Inc()
}

func (that *Metrics) MoveRejected(err error) {
	that.Moves.WithLabelValues(RejectionReason(err)).Inc()
}

func (that *Metrics) BoardClaimed(player entity.Player) {
	that.Claims.WithLabelValues(string(player)).Inc()
}

func (that *Metrics) BoardDrawReset() {
	that.DrawResets.Inc()
}

// RejectionReason maps a rejected move to its label value.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrIndexOutOfRange):
		return ReasonIndexOutOfRange
	case errors.Is(err, apperror.ErrCellOccupied):
		return ReasonCellOccupied
	case errors.Is(err, apperror.ErrMiniBoardNotPlayable):
		return ReasonNotPlayable
	default:
		return ReasonUnknown
	}
}
