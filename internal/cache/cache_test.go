package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientActsAsEmptyCache(t *testing.T) {
	var c *Client

	data, err := c.Get(context.Background(), "geocode:10001")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(context.Background(), "geocode:10001", []byte("{}"), time.Minute))
}

func TestUnreachableRedisActsAsEmptyCache(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)

	data, err := c.Get(context.Background(), "geocode:10001")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(context.Background(), "geocode:10001", []byte("{}"), time.Minute))
}
