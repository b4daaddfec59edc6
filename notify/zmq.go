package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/krisalay/ttl-cache/types"
)

// evictedPayload is the JSON body of an item-evicted message.
type evictedPayload struct {
	Key           string    `json:"key"`
	Value         any       `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
	LastRenewedAt time.Time `json:"last_renewed_at"`
}

// sweepPayload is the JSON body of a sweep-completed message.
type sweepPayload struct {
	types.SweepStats
	Remaining []string `json:"remaining"`
}

/*
Publisher broadcasts cache events on a ZeroMQ PUB socket so other processes can
watch a cache without linking against it.

Every message has two frames: the topic ("item-evicted" or "sweep-completed"),
then a JSON body. Subscribers filter on the topic frame.

Events that cannot be encoded or sent are logged and dropped; a publisher never
fails the cache operation that produced them.
*/
type Publisher struct {
	mu     sync.Mutex
	sock   zmq4.Socket
	logger *zap.Logger
}

// NewPublisher binds a PUB socket on endpoint, e.g. "tcp://*:5557".
func NewPublisher(ctx context.Context, endpoint string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sock := zmq4.NewPub(ctx)
	if err := sock.Listen(endpoint); err != nil {
		_ = sock.Close()
		return nil, fmt.Errorf("listen on %s: %w", endpoint, err)
	}

	return &Publisher{
		sock:   sock,
		logger: logger.With(zap.String("endpoint", endpoint)),
	}, nil
}

func (p *Publisher) ItemEvicted(key string, ent *types.Entry) {
	frames, err := encodeItemEvicted(key, ent)
	if err != nil {
		p.logger.Error("encode item-evicted", zap.String("key", key), zap.Error(err))
		return
	}
	p.send(frames)
}

func (p *Publisher) SweepCompleted(remaining map[string]any, stats types.SweepStats) {
	frames, err := encodeSweepCompleted(remaining, stats)
	if err != nil {
		p.logger.Error("encode sweep-completed", zap.Error(err))
		return
	}
	p.send(frames)
}

func (p *Publisher) send(frames [][]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.sock.SendMulti(zmq4.NewMsgFrom(frames...)); err != nil {
		p.logger.Error("publish event", zap.ByteString("topic", frames[0]), zap.Error(err))
	}
}

// Close closes the socket.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sock.Close()
}

func encodeItemEvicted(key string, ent *types.Entry) ([][]byte, error) {
	body := evictedPayload{Key: key}
	if ent != nil {
		body.Value = ent.Value()
		body.CreatedAt = ent.CreatedAt()
		body.LastRenewedAt = ent.LastRenewedAt()
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return [][]byte{[]byte(TopicItemEvicted), b}, nil
}

// encodeSweepCompleted publishes the remaining keys only. Values stay in process.
func encodeSweepCompleted(remaining map[string]any, stats types.SweepStats) ([][]byte, error) {
	body := sweepPayload{SweepStats: stats, Remaining: make([]string, 0, len(remaining))}
	for k := range remaining {
		body.Remaining = append(body.Remaining, k)
	}
	slices.Sort(body.Remaining)
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return [][]byte{[]byte(TopicSweepCompleted), b}, nil
}
