package filedialog

import "context"

// Mode selects the kind of native dialog.
type Mode int

const (
	ModeOpen Mode = iota
	ModeSave
	ModeFolder
)

func (m Mode) String() string {
	switch m {
	case ModeOpen:
		return "open"
	case ModeSave:
		return "save"
	case ModeFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Options configures one native dialog.
type Options struct {
	Mode       Mode
	Title      string
	DefaultDir string
	// Window is the owning window handle given to Manager.Initialize.
	// Its concrete type is backend specific.
	Window           any
	Filters          []Filter
	ShowHidden       bool
	ConfirmOverwrite bool
}

// Backend constructs native dialogs.
type Backend interface {
	// Prepare builds a configured dialog without showing it.
	Prepare(ctx context.Context, opts Options) (Dialog, error)
}

// Dialog is one configured native dialog.
type Dialog interface {
	// Show blocks until the user confirms or dismisses the dialog.
	// Dismissal is reported as ErrCancelled or as an empty path.
	Show(ctx context.Context) (string, error)
}

// BackendFunc adapts a function into a Backend.
type BackendFunc func(ctx context.Context, opts Options) (Dialog, error)

// Prepare calls f.
func (f BackendFunc) Prepare(ctx context.Context, opts Options) (Dialog, error) {
	return f(ctx, opts)
}

// DialogFunc adapts a function into a Dialog.
type DialogFunc func(ctx context.Context) (string, error)

// Show calls f.
func (f DialogFunc) Show(ctx context.Context) (string, error) {
	return f(ctx)
}
