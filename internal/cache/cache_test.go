package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var _ Store = (*Cache)(nil)

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	_, ok := c.Get(ctx, "articles:list:v1")
	assert.False(t, ok)

	c.Set(ctx, "articles:list:v1", []byte(`[]`))

	got, ok := c.Get(ctx, "articles:list:v1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)

	c.Delete(ctx, "articles:list:v1")

	_, ok = c.Get(ctx, "articles:list:v1")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := New(10 * time.Millisecond)

	c.Set(ctx, "k", []byte("v"))
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

