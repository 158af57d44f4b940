package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClient(mr.Addr(), "", 0, 10, 2)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestSetAndGetJSON(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	type payload struct {
		Title string `json:"title"`
		Year  string `json:"year"`
	}

	err := client.SetJSON(ctx, "movie:42", payload{Title: "Heat", Year: "1995"}, time.Minute)
	require.NoError(t, err)

	var got payload
	err = client.GetJSON(ctx, "movie:42", &got)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, "1995", got.Year)
}

func TestGetJSONMiss(t *testing.T) {
	client, _ := newTestClient(t)

	var got map[string]string
	err := client.GetJSON(context.Background(), "absent", &got)

	assert.ErrorIs(t, err, ErrMiss)
}

func TestGetJSONAfterExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetJSON(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	var got string
	err := client.GetJSON(ctx, "k", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetJSON(ctx, "k", "v", time.Minute))
	require.NoError(t, client.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, client.GetJSON(ctx, "k", &got), ErrMiss)
}
