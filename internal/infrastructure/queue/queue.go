package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"permitflow/internal/shared/biztime"
	"permitflow/internal/shared/id"
)

// Job types understood by the worker.
const (
	JobTypePacketGenerate = "packet.generate"
)

// ErrEmpty is returned by Dequeue when no job arrived within the poll timeout.
var ErrEmpty = errors.New("queue is empty")

// Job is the envelope pushed onto the Redis list. Payload is left raw so the
// worker can dispatch on Type before decoding.
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// PacketGeneratePayload identifies the submission whose packet should be
// rendered. OrganizationID is carried so the worker operates within the
// owning tenant.
type PacketGeneratePayload struct {
	SubmissionSID  string `json:"submission_sid"`
	OrganizationID uint   `json:"organization_id"`
}

// RedisQueue is a single-list FIFO job queue. Producers LPUSH, the worker
// BRPOPs, so jobs are delivered in enqueue order.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func NewJob(jobType string, payload any) (*Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job payload: %w", err)
	}

	return &Job{
		ID:         id.MustGenerateWithPrefix(id.PrefixJob, id.DefaultLength),
		Type:       jobType,
		Payload:    data,
		EnqueuedAt: biztime.NowUTC(),
	}, nil
}

// EnqueuePacketGenerate pushes a packet generation job for the submission.
func (q *RedisQueue) EnqueuePacketGenerate(ctx context.Context, submissionSID string, organizationID uint) error {
	job, err := NewJob(JobTypePacketGenerate, PacketGeneratePayload{
		SubmissionSID:  submissionSID,
		OrganizationID: organizationID,
	})
	if err != nil {
		return err
	}
	return q.Enqueue(ctx, job)
}

func (q *RedisQueue) Enqueue(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	return nil
}

// Dequeue blocks up to timeout waiting for the next job. ErrEmpty signals a
// normal poll expiry so the worker loop can check for shutdown between polls.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}

	// BRPOP returns [key, value].
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(result))
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}

	return &job, nil
}
