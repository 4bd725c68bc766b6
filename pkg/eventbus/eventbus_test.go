package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/stocktakehq/stocktake/pkg/eventbus"
)

type assetMoved struct {
	AssetID string
}

func newTestBus() eventbus.EventBus {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

func TestPublishDeliversToMatchingSubscriber(t *testing.T) {
	bus := newTestBus()

	var got *assetMoved
	bus.Subscribe(func(ev *assetMoved) {
		got = ev
	})

	bus.Publish(&assetMoved{AssetID: "a-1"})

	require.NotNil(t, got)
	require.Equal(t, "a-1", got.AssetID)
}

func TestPublishSkipsNonMatchingSubscriber(t *testing.T) {
	bus := newTestBus()

	called := false
	bus.Subscribe(func(ev *struct{ Other string }) {
		called = true
	})

	bus.Publish(&assetMoved{AssetID: "a-2"})

	require.False(t, called)
}

func TestPublishRecoversFromPanickingHandler(t *testing.T) {
	bus := newTestBus()

	delivered := 0
	bus.Subscribe(func(ev *assetMoved) {
		panic("boom")
	})
	bus.Subscribe(func(ev *assetMoved) {
		delivered++
	})

	require.NotPanics(t, func() {
		bus.Publish(&assetMoved{AssetID: "a-3"})
	})
	require.Equal(t, 1, delivered)
}

func TestUnsubscribeRemovesHandler(t *testing.T) {
	bus := newTestBus()

	handler := func(ev *assetMoved) {}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	require.Equal(t, 0, bus.SubscribersCount())
}

func TestClearRemovesAllHandlers(t *testing.T) {
	bus := newTestBus()

	bus.Subscribe(func(ev *assetMoved) {})
	bus.Subscribe(func(s string) {})
	require.Equal(t, 2, bus.SubscribersCount())

	bus.Clear()
	require.Equal(t, 0, bus.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	matches := eventbus.MatchSignature(func(ev *assetMoved) {}, []interface{}{&assetMoved{}})
	require.True(t, matches)

	matches = eventbus.MatchSignature(func(ev *assetMoved, extra int) {}, []interface{}{&assetMoved{}})
	require.False(t, matches)

	matches = eventbus.MatchSignature("not a func", []interface{}{&assetMoved{}})
	require.False(t, matches)
}
