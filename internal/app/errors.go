package app

import "errors"

// Failure taxonomy for the reminder engine. Every failure is reported to the
// caller through one of these sentinels (wrapped with %w) so the presentation
// layer can discriminate with errors.Is and re-render an accurate toggle
// state.
var (
	// ErrUnknownProgram means the program id does not exist on the grid.
	ErrUnknownProgram = errors.New("unknown program")
	// ErrPermissionDenied means the notification capability refused or lacks
	// permission; user-recoverable via system settings.
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrCapability means scheduling or cancelling failed at the capability
	// layer.
	ErrCapability = errors.New("notification capability error")
	// ErrStorage means persisting the preference mapping failed; the
	// in-memory preference has been rolled back to its pre-toggle value.
	ErrStorage = errors.New("preference storage error")
)
