package submit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
)

// countingSink records calls and answers with err.
type countingSink struct {
	calls atomic.Int32
	err   error
	got   Fields
}

func (s *countingSink) Send(_ context.Context, _ Kind, f Fields) error {
	s.calls.Add(1)
	s.got = f
	return s.err
}

type allowAll struct{ calls atomic.Int32 }

func (v *allowAll) Verify(context.Context, string, string) error {
	v.calls.Add(1)
	return nil
}

var typed = Fields{Name: "Asha Patel", Email: "asha@example.com", Phone: "+91 98765 43210", Message: "Corner plot?"}

// statusServer answers every request with status and counts calls.
func statusServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSubmitWithoutTokenMakesNoCalls(t *testing.T) {
	relaySrv, relayCalls := statusServer(t, http.StatusOK)
	apiSrv, apiCalls := statusServer(t, http.StatusOK)
	v := &allowAll{}

	s := New(v, NewRelay(relaySrv.URL, "key", "site"), NewAPI(apiSrv.URL))
	out := s.Submit(context.Background(), Form{Kind: KindContact, Fields: typed})

	if out.State != StateFailure {
		t.Errorf("state: got %s, want failure", out.State)
	}
	if !errors.Is(out.Err, ErrVerificationMissing) {
		t.Errorf("err: got %v, want ErrVerificationMissing", out.Err)
	}
	if relayCalls.Load() != 0 || apiCalls.Load() != 0 || v.calls.Load() != 0 {
		t.Errorf("calls: relay=%d api=%d verify=%d, want none", relayCalls.Load(), apiCalls.Load(), v.calls.Load())
	}
	if out.Fields != typed {
		t.Error("fields should be kept after a verification failure")
	}
	if out.Message() != "Please complete the verification before submitting." {
		t.Errorf("message: %q", out.Message())
	}
}

func TestSubmitPrimaryFailureSkipsSecondary(t *testing.T) {
	relaySrv, _ := statusServer(t, http.StatusInternalServerError)
	apiSrv, apiCalls := statusServer(t, http.StatusOK)

	s := New(&allowAll{}, NewRelay(relaySrv.URL, "key", "site"), NewAPI(apiSrv.URL))
	out := s.Submit(context.Background(), Form{Kind: KindContact, Fields: typed, Token: "tok"})

	if out.State != StateFailure {
		t.Errorf("state: got %s, want failure", out.State)
	}
	if !errors.Is(out.Err, ErrPrimaryFailed) {
		t.Errorf("err: got %v, want ErrPrimaryFailed", out.Err)
	}
	if n := apiCalls.Load(); n != 0 {
		t.Errorf("secondary calls: got %d, want 0", n)
	}
	if out.Level() != "error" {
		t.Errorf("level: got %q", out.Level())
	}
}

func TestSubmitSecondaryFailureIsPartialSuccess(t *testing.T) {
	relaySrv, relayCalls := statusServer(t, http.StatusOK)
	apiSrv, apiCalls := statusServer(t, http.StatusInternalServerError)

	s := New(&allowAll{}, NewRelay(relaySrv.URL, "key", "site"), NewAPI(apiSrv.URL))
	out := s.Submit(context.Background(), Form{Kind: KindInvestment, Fields: typed, Token: "tok"})

	if out.State != StatePartialSuccess {
		t.Errorf("state: got %s, want partial-success", out.State)
	}
	if !errors.Is(out.Err, ErrSecondaryFailed) {
		t.Errorf("err: got %v, want ErrSecondaryFailed", out.Err)
	}
	if relayCalls.Load() != 1 || apiCalls.Load() != 1 {
		t.Errorf("calls: relay=%d api=%d, want 1 each", relayCalls.Load(), apiCalls.Load())
	}
	// The visitor keeps what they typed after a partial failure.
	if out.Fields != typed {
		t.Errorf("fields: got %+v, want them kept", out.Fields)
	}
	if out.Level() != "warning" {
		t.Errorf("level: got %q, want warning", out.Level())
	}
}

func TestSubmitSuccessResetsFields(t *testing.T) {
	primary := &countingSink{}
	secondary := &countingSink{}

	s := New(&allowAll{}, primary, secondary)
	out := s.Submit(context.Background(), Form{Kind: KindContact, Fields: typed, Token: "tok"})

	if out.State != StateSuccess || out.Err != nil {
		t.Fatalf("outcome: %+v", out)
	}
	if out.Fields != (Fields{}) {
		t.Errorf("fields should be cleared, got %+v", out.Fields)
	}
	if primary.got != typed || secondary.got != typed {
		t.Error("both sinks should receive the same payload")
	}
}

func TestSubmitTransitions(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		primary   error
		secondary error
		want      []State
	}{
		{"success", "tok", nil, nil, []State{StateVerifying, StateSubmittingPrimary, StateSubmittingSecondary, StateSuccess}},
		{"no token", "", nil, nil, []State{StateVerifying, StateFailure}},
		{"primary down", "tok", errors.New("down"), nil, []State{StateVerifying, StateSubmittingPrimary, StateFailure}},
		{"secondary down", "tok", nil, errors.New("down"), []State{StateVerifying, StateSubmittingPrimary, StateSubmittingSecondary, StatePartialSuccess}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []State
			s := New(&allowAll{}, &countingSink{err: tt.primary}, &countingSink{err: tt.secondary},
				WithObserver(func(st State) { seen = append(seen, st) }))
			s.Submit(context.Background(), Form{Kind: KindContact, Fields: typed, Token: tt.token})
			if !reflect.DeepEqual(seen, tt.want) {
				t.Errorf("transitions: got %v, want %v", seen, tt.want)
			}
		})
	}
}

type rejectAll struct{}

func (rejectAll) Verify(context.Context, string, string) error { return errors.New("bad token") }

func TestSubmitRejectedTokenIsVerificationMissing(t *testing.T) {
	primary := &countingSink{}
	s := New(rejectAll{}, primary, &countingSink{})
	out := s.Submit(context.Background(), Form{Kind: KindContact, Fields: typed, Token: "tok"})

	if !errors.Is(out.Err, ErrVerificationMissing) {
		t.Errorf("err: got %v, want ErrVerificationMissing", out.Err)
	}
	if primary.calls.Load() != 0 {
		t.Error("primary must not be called after a rejected token")
	}
}

func TestFieldsTrimmed(t *testing.T) {
	primary := &countingSink{}
	s := New(&allowAll{}, primary, &countingSink{})
	s.Submit(context.Background(), Form{
		Kind:   KindContact,
		Fields: Fields{Name: "  Asha ", Email: " a@b.c", Phone: "1 ", Message: "\n"},
		Token:  "tok",
	})
	want := Fields{Name: "Asha", Email: "a@b.c", Phone: "1"}
	if primary.got != want {
		t.Errorf("sent: got %+v, want %+v", primary.got, want)
	}
}
