package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/megatictactoe/internal/entity"
)

// Connect - opens a client and checks that redis answers.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// SnapshotPublisher fans game snapshots out over pub/sub. Nothing is stored.
type SnapshotPublisher struct {
	client        *goredis.Client
	channelPrefix string
}

func NewSnapshotPublisher(client *goredis.Client, channelPrefix string) *SnapshotPublisher {
	return &SnapshotPublisher{
		client:        client,
		channelPrefix: channelPrefix,
	}
}

// Channel returns the channel snapshots of the game with gameID go to.
func (that *SnapshotPublisher) Channel(gameID string) string {
	return that.channelPrefix + ":" + gameID
}

// Notify - publishes the state as JSON.
func (that *SnapshotPublisher) Notify(ctx context.Context, state *entity.GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game snapshot: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(state.ID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish game snapshot: %w", err)
	}

	return nil
}
