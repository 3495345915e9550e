package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanpama/sdlgen/internal/eventbus"
)

type started struct{ Name string }
type finished struct{ Name string }

func TestDispatchByType(t *testing.T) {
	b := eventbus.New()
	var got []string
	eventbus.On(b, func(_ context.Context, e started) { got = append(got, "start:"+e.Name) })
	eventbus.On(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.Name) })

	eventbus.Emit(context.Background(), b, started{Name: "a"})
	eventbus.Emit(context.Background(), b, finished{Name: "a"})
	eventbus.Emit(context.Background(), b, 42)

	assert.Equal(t, []string{"start:a", "finish:a"}, got)
}

func TestUnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := eventbus.New()
	var first, second int
	unsubFirst := eventbus.On(b, func(context.Context, started) { first++ })
	eventbus.On(b, func(context.Context, started) { second++ })

	eventbus.Emit(context.Background(), b, started{})
	unsubFirst()
	unsubFirst()
	eventbus.Emit(context.Background(), b, started{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestNilBusDropsEvents(t *testing.T) {
	var b *eventbus.Bus
	assert.NotPanics(t, func() { eventbus.Emit(context.Background(), b, started{}) })
}

func TestGlobalBus(t *testing.T) {
	t.Cleanup(func() { eventbus.Use(nil) })

	eventbus.Use(nil)
	noop := eventbus.Subscribe(func(context.Context, started) { t.Fatal("no bus installed") })
	eventbus.Publish(context.Background(), started{})
	noop()

	eventbus.Use(eventbus.New())
	var names []string
	unsub := eventbus.Subscribe(func(_ context.Context, e started) { names = append(names, e.Name) })
	eventbus.Publish(context.Background(), started{Name: "x"})
	unsub()
	eventbus.Publish(context.Background(), started{Name: "y"})

	assert.Equal(t, []string{"x"}, names)
}
