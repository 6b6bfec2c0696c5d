package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrDisables(t *testing.T) {
	assert.Nil(t, New("", "", 0))
}

func TestNilClient_IsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestUnreachable_BehavesAsMiss(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	require.NotNil(t, c)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "doc:events:42", DocumentKey("events", "42"))
}
