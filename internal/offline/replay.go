package offline

import (
	"context"
	"fmt"
	"time"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/commands"
	"github.com/qitae/go-approval/pkg/interfaces"
)

// replayer routes each queued action variant through the shared command
// handler so replays get validation, logging and error tagging. One
// handler per variant is built once per manager.
type replayer struct {
	create  *commands.Handler[CreateAction]
	update  *commands.Handler[UpdateAction]
	submit  *commands.Handler[SubmitAction]
	approve *commands.Handler[ApproveAction]
}

func newReplayer(api content.API, logger interfaces.Logger, timeout time.Duration) *replayer {
	return &replayer{
		create: commands.NewHandler(
			func(ctx context.Context, msg CreateAction) error {
				_, err := api.Create(ctx, msg.Payload)
				return err
			},
			commands.WithLogger[CreateAction](logger),
			commands.WithOperation[CreateAction]("offline.replay.create"),
			commands.WithTimeout[CreateAction](timeout),
		),
		update: commands.NewHandler(
			func(ctx context.Context, msg UpdateAction) error {
				_, err := api.Update(ctx, msg.ID, msg.Payload)
				return err
			},
			commands.WithLogger[UpdateAction](logger),
			commands.WithOperation[UpdateAction]("offline.replay.update"),
			commands.WithTimeout[UpdateAction](timeout),
		),
		submit: commands.NewHandler(
			func(ctx context.Context, msg SubmitAction) error {
				_, err := api.SubmitForReview(ctx, msg.ID)
				return err
			},
			commands.WithLogger[SubmitAction](logger),
			commands.WithOperation[SubmitAction]("offline.replay.submit"),
			commands.WithTimeout[SubmitAction](timeout),
		),
		approve: commands.NewHandler(
			func(ctx context.Context, msg ApproveAction) error {
				_, err := api.ApprovePublish(ctx, msg.ID)
				return err
			},
			commands.WithLogger[ApproveAction](logger),
			commands.WithOperation[ApproveAction]("offline.replay.approve"),
			commands.WithTimeout[ApproveAction](timeout),
		),
	}
}

func (r *replayer) replay(ctx context.Context, action Action) error {
	switch msg := action.(type) {
	case CreateAction:
		return r.create.Execute(ctx, msg)
	case UpdateAction:
		return r.update.Execute(ctx, msg)
	case SubmitAction:
		return r.submit.Execute(ctx, msg)
	case ApproveAction:
		return r.approve.Execute(ctx, msg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownActionKind, action.Type())
	}
}
