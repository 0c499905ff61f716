package filedialog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"filepick/filedialog"
	"filepick/filedialog/dialogtest"
	"filepick/internal/testutil"
)

var freecamFilter = filedialog.MustFilter("p5path", "P5R Freecam Path")

func newLease(t *testing.T, backend filedialog.Backend, opts ...filedialog.Option) (*filedialog.Lease, context.Context) {
	t.Helper()
	manager := filedialog.NewManager(backend, opts...)
	if err := manager.Initialize("/home/user/paths", "hwnd"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	ctx, cancel := testutil.TestRunContext(t)
	t.Cleanup(cancel)
	lease, err := manager.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(lease.Release)
	return lease, ctx
}

func TestOpenRequestConfirm(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Confirm("/tmp/example.p5path")
	lease, ctx := newLease(t, backend)

	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if got, want := request.State(), filedialog.StateCreated; got != want {
		t.Fatalf("State() = %s, want %s", got, want)
	}

	path, ok, err := request.Open(ctx, []filedialog.Filter{freecamFilter}, "Load freecam path")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !ok {
		t.Fatal("Open() ok = false, want true")
	}
	if got, want := path, "/tmp/example.p5path"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
	if got, want := request.State(), filedialog.StateConfirmed; got != want {
		t.Fatalf("State() = %s, want %s", got, want)
	}

	opts, _ := backend.LastOptions()
	if got, want := opts.Mode, filedialog.ModeOpen; got != want {
		t.Fatalf("opts.Mode = %s, want %s", got, want)
	}
	if got, want := opts.Title, "Load freecam path"; got != want {
		t.Fatalf("opts.Title = %q, want %q", got, want)
	}
	if got, want := opts.DefaultDir, "/home/user/paths"; got != want {
		t.Fatalf("opts.DefaultDir = %q, want %q", got, want)
	}
	if got, want := opts.Window, any("hwnd"); got != want {
		t.Fatalf("opts.Window = %v, want %v", got, want)
	}
	if got, want := len(opts.Filters), 1; got != want {
		t.Fatalf("len(opts.Filters) = %d, want %d", got, want)
	}
	if opts.ConfirmOverwrite {
		t.Fatal("opts.ConfirmOverwrite = true for an open dialog")
	}
}

func TestRequestsCancelIsNotAnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(ctx context.Context, lease *filedialog.Lease) (string, bool, error)
	}{
		{
			name: "open",
			run: func(ctx context.Context, lease *filedialog.Lease) (string, bool, error) {
				request, err := filedialog.NewOpenRequest(lease)
				if err != nil {
					return "", false, err
				}
				return request.Open(ctx, nil, "")
			},
		},
		{
			name: "save",
			run: func(ctx context.Context, lease *filedialog.Lease) (string, bool, error) {
				request, err := filedialog.NewSaveRequest(lease)
				if err != nil {
					return "", false, err
				}
				return request.Save(ctx, nil, "")
			},
		},
		{
			name: "folder",
			run: func(ctx context.Context, lease *filedialog.Lease) (string, bool, error) {
				request, err := filedialog.NewFolderRequest(lease)
				if err != nil {
					return "", false, err
				}
				return request.OpenFolder(ctx, "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lease, ctx := newLease(t, dialogtest.New().Cancel())
			path, ok, err := tt.run(ctx, lease)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if ok {
				t.Fatal("ok = true, want false")
			}
			if path != "" {
				t.Fatalf("path = %q, want empty", path)
			}
		})
	}
}

func TestRequestEmptyPathIsCancellation(t *testing.T) {
	t.Parallel()

	backend := filedialog.BackendFunc(func(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return "  ", nil
		}), nil
	})
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewSaveRequest(lease)
	if err != nil {
		t.Fatalf("NewSaveRequest() error = %v", err)
	}
	_, ok, err := request.Save(ctx, nil, "")
	if err != nil || ok {
		t.Fatalf("Save() = ok %v, err %v, want no selection", ok, err)
	}
	if got, want := request.State(), filedialog.StateCancelled; got != want {
		t.Fatalf("State() = %s, want %s", got, want)
	}
}

func TestRequestDefaultTitles(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Cancel().Cancel().Cancel()
	manager := filedialog.NewManager(backend)
	if err := manager.Initialize("/tmp", nil); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	ctx, cancel := testutil.TestRunContext(t)
	defer cancel()

	if _, _, err := manager.Open(ctx, nil, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, _, err := manager.Save(ctx, nil, "   "); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, _, err := manager.OpenFolder(ctx, ""); err != nil {
		t.Fatalf("OpenFolder() error = %v", err)
	}

	prepared := backend.Prepared()
	want := []string{filedialog.DefaultOpenTitle, filedialog.DefaultSaveTitle, filedialog.DefaultFolderTitle}
	for i := range want {
		if got := prepared[i].Title; got != want[i] {
			t.Fatalf("prepared[%d].Title = %q, want %q", i, got, want[i])
		}
	}
}

func TestSaveRequestConfirmOverwrite(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Confirm("/tmp/new.p5path")
	lease, ctx := newLease(t, backend, filedialog.WithConfirmOverwrite(true), filedialog.WithShowHidden(true))
	request, err := filedialog.NewSaveRequest(lease)
	if err != nil {
		t.Fatalf("NewSaveRequest() error = %v", err)
	}
	path, ok, err := request.Save(ctx, []filedialog.Filter{freecamFilter}, "")
	if err != nil || !ok {
		t.Fatalf("Save() = ok %v, err %v", ok, err)
	}
	if got, want := path, "/tmp/new.p5path"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
	opts, _ := backend.LastOptions()
	if !opts.ConfirmOverwrite || !opts.ShowHidden {
		t.Fatalf("opts = %+v, want ConfirmOverwrite and ShowHidden", opts)
	}
	if got, want := opts.Mode, filedialog.ModeSave; got != want {
		t.Fatalf("opts.Mode = %s, want %s", got, want)
	}
}

func TestRequestFilterRestrictsSelectablePaths(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Confirm("/tmp/example.txt")
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	_, ok, err := request.Open(ctx, []filedialog.Filter{freecamFilter}, "")
	if ok {
		t.Fatal("ok = true for a path outside the filter")
	}
	if !errors.Is(err, dialogtest.ErrNotSelectable) {
		t.Fatalf("Open() error = %v, want ErrNotSelectable", err)
	}
	if !errors.Is(err, filedialog.ErrDialogInvocationFailed) {
		t.Fatalf("Open() error = %v, want ErrDialogInvocationFailed", err)
	}
}

func TestRequestNoFiltersSelectsAnything(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Confirm("/tmp/example.txt")
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	path, ok, err := request.Open(ctx, nil, "")
	if err != nil || !ok {
		t.Fatalf("Open() = ok %v, err %v", ok, err)
	}
	if got, want := path, "/tmp/example.txt"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
	opts, _ := backend.LastOptions()
	if len(opts.Filters) != 0 {
		t.Fatalf("opts.Filters = %v, want none", opts.Filters)
	}
}

func TestRequestRejectsDuplicateExtensions(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Confirm("/tmp/example.p5path")
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	filters := []filedialog.Filter{freecamFilter, filedialog.MustFilter("p5path", "Other")}
	if _, _, err := request.Open(ctx, filters, ""); !errors.Is(err, filedialog.ErrInvalidExtension) {
		t.Fatalf("Open() error = %v, want ErrInvalidExtension", err)
	}
	if got := backend.Shows(); got != 0 {
		t.Fatalf("Shows() = %d, want 0", got)
	}
	if got, want := request.State(), filedialog.StateFailed; got != want {
		t.Fatalf("State() = %s, want %s", got, want)
	}
}

func TestRequestFailures(t *testing.T) {
	t.Parallel()

	errOutOfHandles := errors.New("out of handles")
	errBroken := errors.New("shell broke")

	tests := []struct {
		name    string
		backend *dialogtest.Backend
		wantErr []error
	}{
		{
			name:    "creation",
			backend: dialogtest.New().FailCreate(errOutOfHandles),
			wantErr: []error{filedialog.ErrDialogCreationFailed, errOutOfHandles},
		},
		{
			name:    "invocation",
			backend: dialogtest.New().FailShow(errBroken),
			wantErr: []error{filedialog.ErrDialogInvocationFailed, errBroken},
		},
		{
			name:    "relative path",
			backend: dialogtest.New().Confirm("relative/example.p5path"),
			wantErr: []error{filedialog.ErrDialogInvocationFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lease, ctx := newLease(t, tt.backend)
			request, err := filedialog.NewOpenRequest(lease)
			if err != nil {
				t.Fatalf("NewOpenRequest() error = %v", err)
			}
			_, ok, err := request.Open(ctx, nil, "")
			if ok {
				t.Fatal("ok = true, want false")
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("Open() error = %v, want %v", err, want)
				}
			}
			if got, want := request.State(), filedialog.StateFailed; got != want {
				t.Fatalf("State() = %s, want %s", got, want)
			}
		})
	}
}

func TestRequestBackendReturningNoDialog(t *testing.T) {
	t.Parallel()

	backend := filedialog.BackendFunc(func(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
		return nil, nil
	})
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if _, _, err := request.Open(ctx, nil, ""); !errors.Is(err, filedialog.ErrDialogCreationFailed) {
		t.Fatalf("Open() error = %v, want ErrDialogCreationFailed", err)
	}
}

func TestRequestRunsOnce(t *testing.T) {
	t.Parallel()

	backend := dialogtest.New().Cancel().Confirm("/tmp/a.txt")
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if _, _, err := request.Open(ctx, nil, ""); err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, _, err := request.Open(ctx, nil, ""); !errors.Is(err, filedialog.ErrRequestFinished) {
		t.Fatalf("second Open() error = %v, want ErrRequestFinished", err)
	}
	if got, want := backend.Shows(), 1; got != want {
		t.Fatalf("Shows() = %d, want %d", got, want)
	}
}

func TestRequestContextUnavailable(t *testing.T) {
	t.Parallel()

	if _, err := filedialog.NewOpenRequest(nil); !errors.Is(err, filedialog.ErrContextUnavailable) {
		t.Fatalf("NewOpenRequest(nil) error = %v, want ErrContextUnavailable", err)
	}

	backend := dialogtest.New().Confirm("/tmp/a.txt")
	lease, ctx := newLease(t, backend)
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	lease.Release()

	if _, err := filedialog.NewSaveRequest(lease); !errors.Is(err, filedialog.ErrContextUnavailable) {
		t.Fatalf("NewSaveRequest(released) error = %v, want ErrContextUnavailable", err)
	}
	if _, _, err := request.Open(ctx, nil, ""); !errors.Is(err, filedialog.ErrContextUnavailable) {
		t.Fatalf("Open() after release error = %v, want ErrContextUnavailable", err)
	}
}

type recordingObserver struct {
	shown    []string
	resolved []filedialog.State
}

func (o *recordingObserver) DialogShown(requestID string, mode filedialog.Mode, shownAt time.Time) error {
	o.shown = append(o.shown, requestID)
	return nil
}

func (o *recordingObserver) DialogResolved(requestID string, state filedialog.State, resolvedAt time.Time) error {
	o.resolved = append(o.resolved, state)
	return nil
}

func TestRequestNotifiesObserver(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	backend := dialogtest.New().Confirm("/tmp/a.txt")
	lease, ctx := newLease(t, backend, filedialog.WithObserver(observer))
	request, err := filedialog.NewOpenRequest(lease)
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if _, _, err := request.Open(ctx, nil, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got, want := len(observer.shown), 1; got != want {
		t.Fatalf("len(shown) = %d, want %d", got, want)
	}
	if got, want := observer.shown[0], request.ID(); got != want {
		t.Fatalf("shown[0] = %q, want %q", got, want)
	}
	if got, want := observer.resolved, []filedialog.State{filedialog.StateConfirmed}; len(got) != 1 || got[0] != want[0] {
		t.Fatalf("resolved = %v, want %v", got, want)
	}
}
