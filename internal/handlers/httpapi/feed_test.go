package httpapi

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	uuidMocks "github.com/KirkDiggler/autoref/internal/common/uuid/mocks"
	"github.com/KirkDiggler/autoref/internal/services/notify"
)

// sequenceIDs hands out prefix-1, prefix-2, ...
func sequenceIDs(ctrl *gomock.Controller, prefix string) *uuidMocks.MockUUID {
	ids := uuidMocks.NewMockUUID(ctrl)
	var n atomic.Uint64
	ids.EXPECT().NewUUID().DoAndReturn(func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}).AnyTimes()
	return ids
}

func newTestFeed(t *testing.T, buffer int) *Feed {
	t.Helper()
	log, _ := test.NewNullLogger()
	f, err := NewFeed(&FeedConfig{UUID: sequenceIDs(gomock.NewController(t), "sub"), Logger: log, Buffer: buffer})
	require.NoError(t, err)
	return f
}

func TestFeedFiltersByMatch(t *testing.T) {
	f := newTestFeed(t, 4)
	_, one, cancelOne := f.Subscribe("42")
	defer cancelOne()
	_, all, cancelAll := f.Subscribe("")
	defer cancelAll()

	sentAt := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, f.Notify(ctx, &notify.NotifyInput{MatchID: "42", Source: notify.SourceLobby, Sender: "Alpha", Text: "hi", SentAt: sentAt}))
	require.NoError(t, f.Notify(ctx, &notify.NotifyInput{MatchID: "43", Source: notify.SourceSystem, Text: "other"}))

	ev := <-one
	assert.Equal(t, FeedEvent{MatchID: "42", Source: notify.SourceLobby, Sender: "Alpha", Text: "hi", Line: "**[Alpha]** hi", SentAt: sentAt}, ev)
	assert.Len(t, one, 0)

	assert.Equal(t, "42", (<-all).MatchID)
	assert.Equal(t, "43", (<-all).MatchID)
}

func TestFeedDropsWhenSubscriberIsBehind(t *testing.T) {
	f := newTestFeed(t, 1)
	_, events, cancel := f.Subscribe("42")
	defer cancel()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Notify(context.Background(), &notify.NotifyInput{MatchID: "42", Text: "line"}))
	}
	assert.Len(t, events, 1)
}

func TestFeedCancelUnsubscribes(t *testing.T) {
	f := newTestFeed(t, 1)
	id, events, cancel := f.Subscribe("42")
	assert.Equal(t, "sub-1", id)
	assert.Equal(t, 1, f.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, f.Subscribers())
	_, ok := <-events
	assert.False(t, ok)
	require.NoError(t, f.Notify(context.Background(), &notify.NotifyInput{MatchID: "42", Text: "late"}))
}
