package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(func(string) (*conversation.Tracker, error) {
		return conversation.NewTracker()
	})
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		id, err := mgr.Create(ctx, "")
		assert.NoError(t, err)
		_ = mgr.WithSession(ctx, id, func(context.Context, *conversation.Tracker) error { return nil })
		_ = mgr.WithSession(ctx, fmt.Sprintf("ghost-%d", i), func(context.Context, *conversation.Tracker) error { return nil })
		assert.NoError(t, mgr.Delete(ctx, id))
	}

	assert.Empty(t, mgr.locks, "lock entries must be released once unused")
	assert.Empty(t, mgr.sessions)
}
