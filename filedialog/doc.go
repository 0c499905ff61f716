// Package filedialog drives native open, save and folder pickers through a
// pluggable Backend.
//
// A host creates one Manager, calls Initialize once with its default
// directory and window handle, and then asks for paths:
//
//	manager := filedialog.NewManager(zenitydialog.New())
//	if err := manager.Initialize(home, nil); err != nil {
//		return err
//	}
//	path, ok, err := manager.Open(ctx, []filedialog.Filter{freecam}, "")
//
// Only one dialog is shown at a time per Manager. Cancellation is reported
// as ok == false with a nil error.
package filedialog
