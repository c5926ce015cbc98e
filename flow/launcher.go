package flow

import "context"

// Launch identifies one flow presentation.
type Launch struct {
	ID         string
	Descriptor string
}

// ResultFunc delivers a flow result; nil payload means the flow produced no data.
type ResultFunc func(payload *string)

// Launcher presents a flow and eventually calls done exactly once. ctx is
// cancelled once the flow completes, times out or is superseded.
type Launcher interface {
	Launch(ctx context.Context, launch *Launch, done ResultFunc) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, launch *Launch, done ResultFunc) error

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context, launch *Launch, done ResultFunc) error {
	return f(ctx, launch, done)
}

// Cancelled returns a launcher whose flows complete immediately without data.
func Cancelled() Launcher {
	return LauncherFunc(func(_ context.Context, _ *Launch, done ResultFunc) error {
		done(nil)
		return nil
	})
}
