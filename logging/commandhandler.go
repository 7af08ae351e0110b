package logging

import (
	"context"
	"reflect"

	"github.com/sirupsen/logrus"
	"github.com/sukkergris/cqrs"
)

// WithCommandLogging returns middleware that wraps a CommandHandler with
// logging functionality. It logs the command type before execution, and logs
// errors if the command fails.
func WithCommandLogging[C cqrs.Command](logger *logrus.Entry) cqrs.CommandMiddleware[C] {
	return func(next cqrs.CommandHandler[C]) cqrs.CommandHandler[C] {
		return func(ctx context.Context, command C) (cqrs.Result, error) {
			cmdType := reflect.TypeOf(command).String()
			logger.Infof("Dispatch: %s (dispatchID: %s)", cmdType, cqrs.DispatchIDFromContext(ctx))

			result, err := next(ctx, command)
			if err != nil {
				logger.Errorf("Dispatch failed: %s (dispatchID: %s): %v", cmdType, cqrs.DispatchIDFromContext(ctx), err)
			}

			return result, err
		}
	}
}
