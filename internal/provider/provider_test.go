package provider

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type doc struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
	Note  *string  `json:"note"`
}

func defaultDoc() *doc {
	note := "default note"
	return &doc{Title: "Default", Items: []string{"a", "b"}, Note: &note}
}

// stubFetcher answers every fetch with a fixed body or error, optionally
// waiting on release first.
type stubFetcher struct {
	body    string
	err     error
	release chan struct{}
	calls   atomic.Int32
	sawCtx  chan context.Context
}

func (f *stubFetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	f.calls.Add(1)
	if f.sawCtx != nil {
		f.sawCtx <- ctx
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func settle(t *testing.T, m *Mount[doc]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !m.Wait(ctx) {
		t.Fatal("mount did not settle")
	}
}

func TestMountStartsWithDefault(t *testing.T) {
	f := &stubFetcher{body: `{"title":"Remote"}`, release: make(chan struct{})}
	p := New("test", "/api/test", defaultDoc, f)

	m := p.Mount(context.Background())
	if got := m.Current().Title; got != "Default" {
		t.Errorf("title before fetch: got %q, want %q", got, "Default")
	}
	if m.State() != StateFetching {
		t.Errorf("state: got %s, want fetching", m.State())
	}

	close(f.release)
	settle(t, m)
	if m.State() != StateRemote {
		t.Errorf("state: got %s, want remote", m.State())
	}
}

func TestMountReplacesWholeTree(t *testing.T) {
	p := New("test", "/api/test", defaultDoc, &stubFetcher{body: `{"title":"Remote"}`})
	m := p.Mount(context.Background())
	settle(t, m)

	got := m.Current()
	if got.Title != "Remote" {
		t.Errorf("title: got %q, want %q", got.Title, "Remote")
	}
	// Fields the remote document omits are absent, never the default.
	if got.Items != nil {
		t.Errorf("items: got %v, want nil", got.Items)
	}
	if got.Note != nil {
		t.Errorf("note: got %q, want nil", *got.Note)
	}
}

func TestMountKeepsDefault(t *testing.T) {
	tests := []struct {
		name string
		f    *stubFetcher
	}{
		{"empty object", &stubFetcher{body: `{}`}},
		{"empty body", &stubFetcher{body: ``}},
		{"null", &stubFetcher{body: `null`}},
		{"array", &stubFetcher{body: `[{"title":"x"}]`}},
		{"string", &stubFetcher{body: `"hello"`}},
		{"broken json", &stubFetcher{body: `{"title":`}},
		{"fetch error", &stubFetcher{err: fmt.Errorf("%w: status 500", ErrContentUnavailable)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("test", "/api/test", defaultDoc, tt.f)
			m := p.Mount(context.Background())
			settle(t, m)

			if m.State() != StateDefaultRetained {
				t.Errorf("state: got %s, want default-retained", m.State())
			}
			got := m.Current()
			if got.Title != "Default" || len(got.Items) != 2 || got.Note == nil {
				t.Errorf("default not retained: %+v", got)
			}
			if n := tt.f.calls.Load(); n != 1 {
				t.Errorf("fetch calls: got %d, want 1", n)
			}
		})
	}
}

func TestMountWithoutFetcher(t *testing.T) {
	p := New[doc]("test", "/api/test", defaultDoc, nil)
	m := p.Mount(context.Background())

	select {
	case <-m.Settled():
	default:
		t.Fatal("mount without fetcher should settle immediately")
	}
	if m.State() != StateDefaultRetained {
		t.Errorf("state: got %s, want default-retained", m.State())
	}
	if m.Current().Title != "Default" {
		t.Error("default not held")
	}
}

func TestLateFetchAfterUnmountIsDiscarded(t *testing.T) {
	f := &stubFetcher{body: `{"title":"Remote"}`, release: make(chan struct{})}
	p := New("test", "/api/test", defaultDoc, f)

	m := p.Mount(context.Background())
	before := m.Current()
	m.Unmount()
	close(f.release)
	settle(t, m)

	if m.Current() != before {
		t.Error("unmounted mount must not be updated")
	}
	if m.State() == StateRemote {
		t.Error("unmounted mount must not reach remote")
	}
	if m.Live() {
		t.Error("Live() should be false after Unmount")
	}
}

func TestFetchIsNotCancelledWithMountContext(t *testing.T) {
	f := &stubFetcher{body: `{"title":"Remote"}`, release: make(chan struct{}), sawCtx: make(chan context.Context, 1)}
	p := New("test", "/api/test", defaultDoc, f)

	ctx, cancel := context.WithCancel(context.Background())
	m := p.Mount(ctx)
	fetchCtx := <-f.sawCtx
	cancel()

	if fetchCtx.Err() != nil {
		t.Errorf("fetch context cancelled with the page: %v", fetchCtx.Err())
	}
	close(f.release)
	settle(t, m)
	if m.State() != StateRemote {
		t.Errorf("state: got %s, want remote", m.State())
	}
}

func TestRemountRestartsFromDefault(t *testing.T) {
	f := &stubFetcher{body: `{"title":"Remote"}`}
	p := New("test", "/api/test", defaultDoc, f)

	first := p.Mount(context.Background())
	settle(t, first)
	first.Unmount()

	f.release = make(chan struct{})
	second := p.Mount(context.Background())
	if second.Current().Title != "Default" {
		t.Errorf("remount title: got %q, want %q", second.Current().Title, "Default")
	}
	close(f.release)
	settle(t, second)
	if n := f.calls.Load(); n != 2 {
		t.Errorf("fetch calls: got %d, want one per mount (2)", n)
	}
}

func TestDefaultsAreFreshPerMount(t *testing.T) {
	p := New[doc]("test", "/api/test", defaultDoc, nil)
	a := p.Mount(context.Background()).Current()
	b := p.Mount(context.Background()).Current()

	a.Items[0] = "mutated"
	if b.Items[0] != "a" {
		t.Error("mounts share a default tree")
	}
	if p.Default().Items[0] != "a" {
		t.Error("Default() shares a tree with a mount")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	f := &stubFetcher{body: `{"title":"Remote"}`, release: make(chan struct{})}
	defer close(f.release)
	p := New("test", "/api/test", defaultDoc, f)
	m := p.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if m.Wait(ctx) {
		t.Error("Wait should give up when the context expires")
	}
	if m.Current().Title != "Default" {
		t.Error("unsettled mount should still hold the default")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   error
		wantTitle string
	}{
		{"object", `{"title":"x"}`, nil, "x"},
		{"unknown fields only", `{"other":1}`, nil, ""},
		{"mistyped field dropped", `{"title":5,"items":["z"]}`, nil, ""},
		{"empty object", `{}`, ErrEmptyDocument, ""},
		{"whitespace", "  \n", ErrEmptyDocument, ""},
		{"null", `null`, ErrEmptyDocument, ""},
		{"array", `[]`, ErrContentUnavailable, ""},
		{"syntax", `{"title"`, ErrContentUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[doc]([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestDecodeMistypedKeepsOtherFields(t *testing.T) {
	got, err := Decode[doc]([]byte(`{"title":5,"items":["z"]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0] != "z" {
		t.Errorf("items: got %v, want [z]", got.Items)
	}
}

func TestEmptyDocumentIsContentUnavailable(t *testing.T) {
	if !errors.Is(ErrEmptyDocument, ErrContentUnavailable) {
		t.Error("ErrEmptyDocument should wrap ErrContentUnavailable")
	}
}
