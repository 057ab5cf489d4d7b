package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentzero/core"
)

func TestInMemoryStore_AppendAndMessages(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "a", core.SystemMessage("sys")))
	require.NoError(t, s.Append(ctx, "a", core.UserMessage("hi")))
	require.NoError(t, s.Append(ctx, "b", core.UserMessage("other")))

	msgs, err := s.Messages(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []core.Message{core.SystemMessage("sys"), core.UserMessage("hi")}, msgs)

	// returned slices are copies
	msgs[0] = core.UserMessage("mutated")
	again, err := s.Messages(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "sys", again[0].Content)

	ids, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestInMemoryStore_UnknownSession(t *testing.T) {
	msgs, err := NewInMemoryStore().Messages(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestInMemoryStore_EmptySessionID(t *testing.T) {
	err := NewInMemoryStore().Append(context.Background(), "", core.UserMessage("hi"))
	assert.ErrorIs(t, err, ErrEmptySessionID)
}

func TestInMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, "c", core.UserMessage("x"))
		}()
	}
	wg.Wait()

	msgs, err := s.Messages(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, msgs, 50)
}
