package broker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "listings:events"

// RedisEventBroker implements EventBroker over redis pub/sub, so every
// server node sees mutations performed on any node.
type RedisEventBroker struct {
	client *redis.Client
	pubsub *redis.PubSub
	ctx    context.Context
}

func NewRedisEventBroker(client *redis.Client) *RedisEventBroker {
	return &RedisEventBroker{
		client: client,
		ctx:    context.Background(),
	}
}

func (b *RedisEventBroker) Publish(event ListingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(b.ctx, eventsChannel, data).Err()
}

func (b *RedisEventBroker) Subscribe() (<-chan ListingEvent, error) {
	b.pubsub = b.client.Subscribe(b.ctx, eventsChannel)

	eventChan := make(chan ListingEvent, 100)

	go func() {
		defer close(eventChan)

		for redisMsg := range b.pubsub.Channel() {
			var event ListingEvent
			if err := json.Unmarshal([]byte(redisMsg.Payload), &event); err != nil {
				continue
			}
			eventChan <- event
		}
	}()

	return eventChan, nil
}

func (b *RedisEventBroker) Close() error {
	if b.pubsub != nil {
		b.pubsub.Close()
	}
	return nil
}
