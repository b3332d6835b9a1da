package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var seen []string
	sub := bus.Subscribe(func(_ context.Context, ev Event) {
		seen = append(seen, ev.BuildingID)
	}, KindSapientKilled)
	defer sub.Close()

	for _, b := range []string{"house-1", "house-1", "house-2"} {
		ev := New(KindSapientKilled)
		ev.BuildingID = b
		bus.Publish(ctx, ev)
	}

	assert.Equal(t, []string{"house-1", "house-1", "house-2"}, seen)
}

func TestBus_SubscriptionCloseRemovesAllKinds(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	calls := 0
	sub := bus.Subscribe(func(context.Context, Event) { calls++ }, Kinds()...)

	bus.Publish(ctx, New(KindRitualHeld))
	bus.Publish(ctx, New(KindCoveringWorn))
	assert.Equal(t, 2, calls)

	sub.Close()
	sub.Close() // double close is a no-op

	bus.Publish(ctx, New(KindRitualHeld))
	assert.Equal(t, 2, calls)
}

func TestBus_KindIsolation(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	kills := 0
	gifts := 0
	defer bus.Subscribe(func(context.Context, Event) { kills++ }, KindSapientKilled).Close()
	defer bus.Subscribe(func(context.Context, Event) { gifts++ }, KindPartGifted).Close()

	bus.Publish(ctx, New(KindSapientKilled))
	bus.Publish(ctx, New(KindSapientKilled))
	bus.Publish(ctx, New(KindPartGifted))

	assert.Equal(t, 2, kills)
	assert.Equal(t, 1, gifts)
}

func TestKinds_CoversEveryTrackedEvent(t *testing.T) {
	assert.Len(t, Kinds(), 13)
	seen := map[Kind]bool{}
	for _, k := range Kinds() {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
}
