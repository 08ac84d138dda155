package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Broadcast vocabulary understood by connected clients.
const (
	MsgRefreshPacks = "REFRESH_PACKS"
	MsgPing         = "PING"
	MsgPong         = "PONG"
)

// Event bus detail types.
const (
	EventMomentRedeemed = "moment.redeemed"
	EventTradeAccepted  = "trade-accepted"
	EventPackOpened     = "pack.opened"
	EventPacksIssued    = "packs.issued"
)

// IsClientMessage reports whether msg may be sent by a websocket client.
func IsClientMessage(msg string) bool {
	return msg == MsgRefreshPacks || msg == MsgPing
}

type Event struct {
	Name   string
	Detail any
}

type Broadcaster interface {
	Broadcast(ctx context.Context, message string) error
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Notifier is what domain services call once their write has committed.
type Notifier interface {
	After(ctx context.Context, refreshPacks bool, events ...Event)
}

// dispatchTimeout bounds one background fan-out.
const dispatchTimeout = 10 * time.Second

type Fanout struct {
	broadcaster Broadcaster
	publisher   Publisher
	pending     errgroup.Group
}

var _ Notifier = &Fanout{}

func NewFanout(broadcaster Broadcaster, publisher Publisher) *Fanout {
	return &Fanout{
		broadcaster: broadcaster,
		publisher:   publisher,
	}
}

func (f *Fanout) PacksChanged(ctx context.Context) error {
	if f.broadcaster == nil {
		return nil
	}
	return f.broadcaster.Broadcast(ctx, MsgRefreshPacks)
}

func (f *Fanout) Publish(ctx context.Context, events ...Event) error {
	if f.publisher == nil || len(events) == 0 {
		return nil
	}
	return f.publisher.Publish(ctx, events...)
}

// After starts the broadcast and the publish in the background and returns.
// They outlive the request that triggered them; failures are logged and never
// reach the caller.
func (f *Fanout) After(ctx context.Context, refreshPacks bool, events ...Event) {
	if !refreshPacks && len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	f.pending.Go(func() error {
		defer cancel()
		f.dispatch(ctx, refreshPacks, events)
		return nil
	})
}

// Wait blocks until every notification started by After has finished.
func (f *Fanout) Wait() {
	_ = f.pending.Wait()
}

func (f *Fanout) dispatch(ctx context.Context, refreshPacks bool, events []Event) {
	var g errgroup.Group

	if refreshPacks {
		g.Go(func() error {
			if err := f.PacksChanged(ctx); err != nil {
				slog.Warn("Broadcast failed",
					slog.String("type", "ws"),
					slog.String("message", MsgRefreshPacks),
					slog.Any("error", err))
			}
			return nil
		})
	}

	if len(events) > 0 {
		g.Go(func() error {
			if err := f.Publish(ctx, events...); err != nil {
				names := make([]string, 0, len(events))
				for _, e := range events {
					names = append(names, e.Name)
				}
				slog.Error("Event publish failed",
					slog.String("type", "event"),
					slog.Any("events", names),
					slog.Any("error", err))
			}
			return nil
		})
	}

	_ = g.Wait()
}

type nop struct{}

func (nop) After(context.Context, bool, ...Event) {}

// Nop discards every notification.
func Nop() Notifier { return nop{} }
