package queue

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestNewJob(t *testing.T) {
	job, err := NewJob(JobTypePacketGenerate, PacketGeneratePayload{
		SubmissionSID:  "sub_abcdef123456",
		OrganizationID: 10,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(job.ID, "job_"))
	assert.Equal(t, JobTypePacketGenerate, job.Type)
	assert.False(t, job.EnqueuedAt.IsZero())

	var payload PacketGeneratePayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, "sub_abcdef123456", payload.SubmissionSID)
	assert.Equal(t, uint(10), payload.OrganizationID)
}

func TestRedisQueue_EnqueueDequeue_FIFO(t *testing.T) {
	q := NewRedisQueue(setupTestRedis(t), "test:jobs")
	ctx := context.Background()

	require.NoError(t, q.EnqueuePacketGenerate(ctx, "sub_first0000001", 10))
	require.NoError(t, q.EnqueuePacketGenerate(ctx, "sub_second000001", 10))

	first, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	second, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	var p1, p2 PacketGeneratePayload
	require.NoError(t, json.Unmarshal(first.Payload, &p1))
	require.NoError(t, json.Unmarshal(second.Payload, &p2))
	assert.Equal(t, "sub_first0000001", p1.SubmissionSID)
	assert.Equal(t, "sub_second000001", p2.SubmissionSID)
}

func TestRedisQueue_Dequeue_EmptyTimesOut(t *testing.T) {
	q := NewRedisQueue(setupTestRedis(t), "test:jobs")

	job, err := q.Dequeue(context.Background(), 100*time.Millisecond)
	assert.Nil(t, job)
	assert.ErrorIs(t, err, ErrEmpty)
}
