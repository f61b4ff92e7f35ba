package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestHealthMonitorChecksBeforeFirstTick(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	})
	mc, err := mongo.Connect(context.Background(),
		options.Client().
			ApplyURI("mongodb://127.0.0.1:1").
			SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	StartHealthMonitor([]*redis.Client{rdb}, mc)

	// The snapshot must be populated well before the 60s ticker fires.
	require.Eventually(t, func() bool {
		return GetHealthStatus().CheckedAt.After(start)
	}, 3*time.Second, 50*time.Millisecond)

	status := GetHealthStatus()
	assert.False(t, status.Mongo)
	require.Len(t, status.Redis, 1)
	assert.False(t, status.Redis[0])
}
