package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetrental/config"
)

func TestCacheBeforeInit(t *testing.T) {
	store = nil

	// All operations are safe no-ops before Init
	Set("key", "value")
	_, found := Get("key")
	assert.False(t, found)
	Delete("key")
	Flush()
}

func TestCacheRoundTrip(t *testing.T) {
	config.InitConfig()
	Init()
	defer Flush()

	Set("stats", map[string]int{"vehicles": 3})

	value, found := Get("stats")
	assert.True(t, found)
	assert.Equal(t, map[string]int{"vehicles": 3}, value)

	Delete("stats")
	_, found = Get("stats")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	config.InitConfig()
	Init()
	defer Flush()

	SetFor("short", "lived", 20*time.Millisecond)

	_, found := Get("short")
	assert.True(t, found)

	time.Sleep(40 * time.Millisecond)
	_, found = Get("short")
	assert.False(t, found)
}

func TestCacheFlush(t *testing.T) {
	config.InitConfig()
	Init()

	Set("a", 1)
	Set("b", 2)
	Flush()

	_, found := Get("a")
	assert.False(t, found)
	_, found = Get("b")
	assert.False(t, found)
}
