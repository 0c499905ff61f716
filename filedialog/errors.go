package filedialog

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second Manager.Initialize call.
	ErrAlreadyInitialized = errors.New("file dialog context already initialized")
	// ErrNotInitialized is returned when a dialog is requested before Initialize.
	ErrNotInitialized = errors.New("file dialog context not initialized")
	// ErrInvalidExtension reports a malformed or duplicated filter extension.
	ErrInvalidExtension = errors.New("invalid file type extension")
	// ErrContextUnavailable is returned when a request is built from a nil or released lease.
	ErrContextUnavailable = errors.New("file dialog context unavailable")
	// ErrDialogCreationFailed wraps backend failures while constructing a dialog.
	ErrDialogCreationFailed = errors.New("file dialog creation failed")
	// ErrDialogInvocationFailed wraps backend failures while showing a dialog.
	ErrDialogInvocationFailed = errors.New("file dialog invocation failed")
	// ErrRequestFinished is returned when a request is run a second time.
	ErrRequestFinished = errors.New("file dialog request already finished")

	// ErrCancelled is returned by a Dialog when the user dismissed it.
	// Requests translate it into "no selection"; callers never see it.
	ErrCancelled = errors.New("file dialog cancelled")
)
