// Package nativedialog shows dialogs with github.com/sqweek/dialog.
//
// sqweek/dialog links against GTK on Linux, so the backend is only compiled
// with the "dialog" build tag. It cannot parent a dialog to a window; the
// window handle is ignored, as are the show-hidden and confirm-overwrite
// settings.
package nativedialog
