package refresh

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// NopNotifier используется, когда экземпляр сервиса один
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, time.Time) error { return nil }

func (NopNotifier) Subscribe(ctx context.Context, _ func(time.Time)) error {
	<-ctx.Done()
	return nil
}

func (NopNotifier) Close() error { return nil }

// RedisNotifier рассылает устаревшие даты через redis pub/sub.
// Собственные сообщения экземпляр игнорирует.
type RedisNotifier struct {
	client     *redis.Client
	channel    string
	instanceID string
	logger     Logger
}

// NewRedisNotifier создает notifier поверх готового клиента redis
func NewRedisNotifier(client *redis.Client, channel string, logger Logger) *RedisNotifier {
	return &RedisNotifier{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

// Publish отправляет дату в канал в формате "<instance>|YYYY-MM-DD"
func (n *RedisNotifier) Publish(ctx context.Context, date time.Time) error {
	if err := n.client.Publish(ctx, n.channel, encodeStale(n.instanceID, date)).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe блокируется до отмены ctx, вызывая onStale для дат от других экземпляров
func (n *RedisNotifier) Subscribe(ctx context.Context, onStale func(date time.Time)) error {
	pubsub := n.client.Subscribe(ctx, n.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			sender, date, err := decodeStale(msg.Payload)
			if err != nil {
				n.logger.Warn("Subscribe: bad stale message %q: %v", msg.Payload, err)
				continue
			}
			if sender == n.instanceID {
				continue
			}
			onStale(date)
		}
	}
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

func encodeStale(instanceID string, date time.Time) string {
	return instanceID + "|" + date.Format(domain.DateFormat)
}

func decodeStale(payload string) (string, time.Time, error) {
	sender, rawDate, found := strings.Cut(payload, "|")
	if !found {
		return "", time.Time{}, fmt.Errorf("missing separator")
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return "", time.Time{}, err
	}
	return sender, date, nil
}
