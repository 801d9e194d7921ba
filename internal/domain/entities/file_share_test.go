package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessLevelFlags(t *testing.T) {
	level := AccessView | AccessEdit

	assert.True(t, level.Has(AccessView))
	assert.True(t, level.Has(AccessEdit))
	assert.False(t, level.Has(AccessComment))
	assert.False(t, AccessNone.Has(AccessView))
}

func TestShareExpiry(t *testing.T) {
	now := time.Now().UTC()

	unlimited := &FileShare{}
	assert.False(t, unlimited.Expired(now))

	past := now.Add(-time.Second)
	expired := &FileShare{ExpirationDate: &past}
	assert.True(t, expired.Expired(now))

	future := now.Add(time.Second)
	live := &FileShare{ExpirationDate: &future}
	assert.False(t, live.Expired(now))

	// An expiry exactly at the evaluation instant has not lapsed yet.
	exact := now
	boundary := &FileShare{ExpirationDate: &exact}
	assert.False(t, boundary.Expired(now))
}
