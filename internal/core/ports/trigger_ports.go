package ports

import "context"

// TriggerSource is an optional out-of-band trigger for a broadcast (the
// original deployment fired one from a keyboard hotkey). Availability is
// probed once at startup; an unavailable source is simply never run.
type TriggerSource interface {
	Available() bool
	// Run blocks until ctx is done or the trigger fires. It must never panic
	// or interfere with the primary event flow.
	Run(ctx context.Context, fire func())
}
