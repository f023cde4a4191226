package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
)

/* ---------------- fake attempt API ---------------- */

type apiError struct{ retry, conflict bool }

func (e apiError) Error() string { return "api error" }
func (e apiError) Retryable() bool { return e.retry }
func (e apiError) Conflict() bool { return e.conflict }

type fakeAPI struct {
	mu        sync.Mutex
	detail    dto.AttemptDetailDTO
	saves     []dto.ResponseUpsertDTO
	submits   []model.SubmitReason
	stored    map[uint]dto.ResponseDTO
	saveErr   error
	submitErr []error // consumed one per call; nil entries succeed

	// When set before Start, FetchAttempt reports on fetchStarted and then
	// blocks until fetchGate is closed.
	fetchStarted chan struct{}
	fetchGate    chan struct{}
}

func newFakeAPI(remaining int64, questions ...uint) *fakeAPI {
	f := &fakeAPI{stored: map[uint]dto.ResponseDTO{}}
	f.detail.ID = 1
	f.detail.Status = string(model.AttemptInProgress)
	f.detail.RemainingSeconds = remaining
	for i, id := range questions {
		f.detail.Questions = append(f.detail.Questions, dto.QuestionDTO{ID: id, OrderInExam: i + 1, Kind: "single_choice", Options: []string{"a", "b", "c"}})
	}
	return f
}

func (f *fakeAPI) FetchAttempt(ctx context.Context, attemptID uint) (*dto.AttemptDetailDTO, error) {
	if f.fetchGate != nil {
		f.fetchStarted <- struct{}{}
		<-f.fetchGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.detail
	return &d, nil
}

func (f *fakeAPI) SaveResponse(ctx context.Context, attemptID, questionID uint, req dto.ResponseUpsertDTO) (*dto.ResponseDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, req)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	prev := f.stored[questionID]
	r := dto.ResponseDTO{
		QuestionID:       questionID,
		Answer:           req.Answer,
		Status:           req.Status,
		TimeSpentSeconds: prev.TimeSpentSeconds + req.TimeSpentDelta,
	}
	f.stored[questionID] = r
	return &r, nil
}

func (f *fakeAPI) SubmitAttempt(ctx context.Context, attemptID uint, reason model.SubmitReason) (*dto.AttemptDetailDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, reason)
	if len(f.submitErr) > 0 {
		err := f.submitErr[0]
		f.submitErr = f.submitErr[1:]
		if err != nil {
			return nil, err
		}
	}
	d := f.detail
	d.Status = string(model.AttemptCompleted)
	d.SubmitReason = string(reason)
	return &d, nil
}

func (f *fakeAPI) setSaveErr(err error) {
	f.mu.Lock()
	f.saveErr = err
	f.mu.Unlock()
}

// completeOnServer finishes the attempt behind the session's back, the way
// the expiry sweeper or a second tab would. Later saves get a conflict.
func (f *fakeAPI) completeOnServer(reason model.SubmitReason) {
	f.mu.Lock()
	f.detail.Status = string(model.AttemptCompleted)
	f.detail.SubmitReason = string(reason)
	f.detail.RemainingSeconds = 0
	f.saveErr = apiError{conflict: true}
	f.mu.Unlock()
}

func (f *fakeAPI) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeAPI) submitCalls() []model.SubmitReason {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.SubmitReason(nil), f.submits...)
}

func (f *fakeAPI) lastSave() dto.ResponseUpsertDTO {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

/* ---------------- helpers ---------------- */

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newEventLog() *eventLog { return &eventLog{ch: make(chan Event, 256)} }

func (l *eventLog) record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
	select {
	case l.ch <- e:
	default:
	}
}

func (l *eventLog) count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (l *eventLog) waitFor(t *testing.T, kind EventKind) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-l.ch:
			if e.Kind == kind {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func startController(t *testing.T, api *fakeAPI, opts Options) (*Controller, *eventLog) {
	t.Helper()
	events := newEventLog()
	opts.OnEvent = events.record
	if opts.TickInterval == 0 {
		opts.TickInterval = time.Millisecond
	}
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = time.Millisecond
	}
	c := New(api, 1, opts)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, events
}

/* ---------------- tests ---------------- */

func TestTimeoutSubmitsExactlyOnce(t *testing.T) {
	api := newFakeAPI(3, 10, 11)
	c, events := startController(t, api, Options{})

	events.waitFor(t, EventSubmitted)

	// Late signals and a manual click after the forced submit must not
	// produce a second request.
	c.HandleSignal(SignalFocusLost)
	if err := c.Submit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("manual submit after timeout: err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	calls := api.submitCalls()
	if len(calls) != 1 || calls[0] != model.SubmitTimeout {
		t.Fatalf("submit calls = %v, want [timeout]", calls)
	}
	if c.State() != StateSubmitted {
		t.Fatalf("state = %s", c.State())
	}
	if got := events.count(EventTick); got != 3 {
		t.Fatalf("ticks = %d, want 3", got)
	}
	if c.Result() == nil || c.Result().Status != string(model.AttemptCompleted) {
		t.Fatalf("result = %+v", c.Result())
	}
}

func TestZeroRemainingSubmitsImmediately(t *testing.T) {
	api := newFakeAPI(0, 10)
	_, events := startController(t, api, Options{})
	e := events.waitFor(t, EventSubmitted)
	if e.Reason != model.SubmitTimeout {
		t.Fatalf("reason = %s", e.Reason)
	}
}

func TestFocusLossForcesSubmit(t *testing.T) {
	tests := []struct {
		signal Signal
		reason model.SubmitReason
	}{
		{SignalFocusLost, model.SubmitFocusLost},
		{SignalFullscreenExit, model.SubmitFullscreenExit},
	}
	for _, tc := range tests {
		t.Run(string(tc.reason), func(t *testing.T) {
			api := newFakeAPI(3600, 10)
			c, events := startController(t, api, Options{TickInterval: time.Hour})

			c.HandleSignal(tc.signal)
			c.HandleSignal(tc.signal)
			events.waitFor(t, EventSubmitted)
			_ = c.Close()

			calls := api.submitCalls()
			if len(calls) != 1 || calls[0] != tc.reason {
				t.Fatalf("submit calls = %v, want [%s]", calls, tc.reason)
			}
			if c.Violations() != 1 {
				t.Fatalf("violations = %d, want 1", c.Violations())
			}
		})
	}
}

func TestRestrictedInputOnlyWarns(t *testing.T) {
	api := newFakeAPI(3600, 10)
	c, events := startController(t, api, Options{TickInterval: time.Hour})

	if !c.HandleKey(Key{Name: "c", Ctrl: true}) {
		t.Fatal("ctrl+c should be suppressed")
	}
	if !c.HandleKey(Key{Name: "F12"}) {
		t.Fatal("F12 should be suppressed")
	}
	if c.HandleKey(Key{Name: "c"}) {
		t.Fatal("plain c must pass through")
	}
	c.HandleSignal(SignalContextMenu)

	if got := events.count(EventWarning); got != 3 {
		t.Fatalf("warnings = %d, want 3", got)
	}
	if c.Violations() != 3 {
		t.Fatalf("violations = %d, want 3", c.Violations())
	}
	if c.State() != StateActive || len(api.submitCalls()) != 0 {
		t.Fatalf("warnings must not submit: state %s, calls %v", c.State(), api.submitCalls())
	}
}

func TestIsRestrictedKey(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{Key{Name: "F12"}, true},
		{Key{Name: "v", Ctrl: true}, true},
		{Key{Name: "V", Meta: true}, true},
		{Key{Name: "u", Ctrl: true}, true},
		{Key{Name: "s", Meta: true}, true},
		{Key{Name: "I", Ctrl: true, Shift: true}, true},
		{Key{Name: "z", Ctrl: true}, false},
		{Key{Name: "a"}, false},
		{Key{Name: "Enter"}, false},
	}
	for _, tc := range tests {
		if got := IsRestrictedKey(tc.key); got != tc.want {
			t.Errorf("IsRestrictedKey(%+v) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestNavigationSendsElapsedDelta(t *testing.T) {
	api := newFakeAPI(3600, 10, 11)
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	c, _ := startController(t, api, Options{TickInterval: time.Hour, Now: clock.Now})
	ctx := context.Background()

	clock.Advance(12*time.Second + 600*time.Millisecond)
	if err := c.GoTo(ctx, 11); err != nil {
		t.Fatalf("goto: %v", err)
	}
	first := api.lastSave()
	if first.TimeSpentDelta != 12 || first.Status != string(model.ResponseNotAnswered) {
		t.Fatalf("leaving q10 saved %+v", first)
	}
	if q, _ := c.Current(); q.ID != 11 {
		t.Fatalf("current = %d, want 11", q.ID)
	}

	clock.Advance(5 * time.Second)
	if err := c.Answer(ctx, model.Choice(2)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got := api.lastSave(); got.TimeSpentDelta != 5 || got.Answer != model.Choice(2) || got.Status != string(model.ResponseAnswered) {
		t.Fatalf("answer saved %+v", got)
	}

	if err := c.ToggleMarkForReview(ctx); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if got := c.Response(11); got.Status != model.ResponseMarkedForReviewAnswered || got.TimeSpentSeconds != 5 {
		t.Fatalf("local q11 = %+v", got)
	}

	// The 600ms left over on q10 is carried, so another 400ms makes a second.
	if err := c.GoTo(ctx, 10); err != nil {
		t.Fatalf("goto back: %v", err)
	}
	clock.Advance(400 * time.Millisecond)
	if err := c.ClearAnswer(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := c.Response(10); got.TimeSpentSeconds != 13 || got.Status != model.ResponseNotAnswered {
		t.Fatalf("q10 = %+v, want 13s not_answered", got)
	}

	if err := c.GoTo(ctx, 99); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("goto unknown: err = %v", err)
	}
}

func TestFailedSaveRollsBack(t *testing.T) {
	api := newFakeAPI(3600, 10)
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	c, events := startController(t, api, Options{TickInterval: time.Hour, Now: clock.Now})
	ctx := context.Background()

	clock.Advance(4 * time.Second)
	if err := c.Answer(ctx, model.Choice(0)); err != nil {
		t.Fatalf("answer: %v", err)
	}

	api.setSaveErr(errors.New("network down"))
	clock.Advance(3 * time.Second)
	if err := c.Answer(ctx, model.Choice(1)); err == nil {
		t.Fatal("expected save error")
	}
	got := c.Response(10)
	if got.Answer != model.Choice(0) || got.TimeSpentSeconds != 4 {
		t.Fatalf("after failed save local = %+v, want the confirmed choice(0) with 4s", got)
	}
	if events.count(EventSaveFailed) != 1 {
		t.Fatal("missing save_failed event")
	}

	// The 3s the failed save carried are sent with the next successful one.
	api.setSaveErr(nil)
	clock.Advance(2 * time.Second)
	if err := c.Answer(ctx, model.Choice(1)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if d := api.lastSave().TimeSpentDelta; d != 5 {
		t.Fatalf("delta = %d, want 5", d)
	}
	if got := c.Response(10); got.Answer != model.Choice(1) || got.TimeSpentSeconds != 9 {
		t.Fatalf("after retry local = %+v", got)
	}
}

func TestFailedFirstSaveForgetsLocalResponse(t *testing.T) {
	api := newFakeAPI(3600, 10)
	api.setSaveErr(errors.New("boom"))
	c, _ := startController(t, api, Options{TickInterval: time.Hour})

	_ = c.Answer(context.Background(), model.Choice(2))
	if got := c.Response(10); got.Status != model.ResponseNotVisited || !got.Answer.IsEmpty() {
		t.Fatalf("local = %+v, want not visited", got)
	}
}

func TestSubmitRetriesThenBlocks(t *testing.T) {
	api := newFakeAPI(3600, 10)
	api.submitErr = []error{apiError{retry: true}, apiError{retry: true}, apiError{retry: true}}
	c, events := startController(t, api, Options{TickInterval: time.Hour, SubmitRetries: 2})

	c.HandleSignal(SignalFocusLost)
	failed := events.waitFor(t, EventSubmitFailed)
	if failed.Reason != model.SubmitFocusLost || failed.Err == nil {
		t.Fatalf("failure event = %+v", failed)
	}
	if c.State() != StateSubmitBlocked {
		t.Fatalf("state = %s, want submit_blocked", c.State())
	}
	if n := len(api.submitCalls()); n != 3 {
		t.Fatalf("submit calls = %d, want 3", n)
	}

	if err := c.RetrySubmit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	calls := api.submitCalls()
	if c.State() != StateSubmitted || calls[len(calls)-1] != model.SubmitFocusLost {
		t.Fatalf("after retry: state %s calls %v", c.State(), calls)
	}
	if err := c.RetrySubmit(context.Background()); !errors.Is(err, ErrNotBlocked) {
		t.Fatalf("second retry: err = %v", err)
	}
}

func TestNonRetryableSubmitBlocksAtOnce(t *testing.T) {
	api := newFakeAPI(3600, 10)
	api.submitErr = []error{apiError{retry: false}}
	c, _ := startController(t, api, Options{TickInterval: time.Hour, SubmitRetries: 5})

	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}
	if n := len(api.submitCalls()); n != 1 {
		t.Fatalf("submit calls = %d, want 1", n)
	}
	if c.State() != StateSubmitBlocked {
		t.Fatalf("state = %s", c.State())
	}
}

func TestManualSubmitSavesCurrentQuestion(t *testing.T) {
	api := newFakeAPI(3600, 10)
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	c, _ := startController(t, api, Options{TickInterval: time.Hour, Now: clock.Now})

	clock.Advance(7 * time.Second)
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if d := api.lastSave().TimeSpentDelta; d != 7 {
		t.Fatalf("final save delta = %d, want 7", d)
	}
	if err := c.Answer(context.Background(), model.Choice(1)); !errors.Is(err, ErrNotActive) {
		t.Fatalf("answer after submit: err = %v", err)
	}
}

func TestNoForcedSubmitAfterClose(t *testing.T) {
	api := newFakeAPI(2, 10)
	c, events := startController(t, api, Options{TickInterval: 20 * time.Millisecond})

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if n := len(api.submitCalls()); n != 0 {
		t.Fatalf("submit fired after close: %d calls", n)
	}
	if events.count(EventSubmitting) != 0 {
		t.Fatal("submitting event after close")
	}
	c.HandleSignal(SignalFocusLost)
	if n := len(api.submitCalls()); n != 0 {
		t.Fatalf("signal after close submitted: %d calls", n)
	}
}

func TestStartAfterCloseIsRefused(t *testing.T) {
	api := newFakeAPI(2, 10)
	events := newEventLog()
	c := New(api, 1, Options{TickInterval: 10 * time.Millisecond, OnEvent: events.record})

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("start after close: err = %v, want ErrClosed", err)
	}
	time.Sleep(60 * time.Millisecond)
	if c.State() != StateIdle || events.count(EventTick) != 0 || len(api.submitCalls()) != 0 {
		t.Fatalf("closed session ran: state %s, ticks %d, submits %v", c.State(), events.count(EventTick), api.submitCalls())
	}
}

func TestCloseWhileLoadingStopsStart(t *testing.T) {
	api := newFakeAPI(2, 10)
	api.fetchStarted = make(chan struct{}, 1)
	api.fetchGate = make(chan struct{})
	events := newEventLog()
	c := New(api, 1, Options{TickInterval: 10 * time.Millisecond, OnEvent: events.record})

	started := make(chan error, 1)
	go func() { started <- c.Start(context.Background()) }()
	<-api.fetchStarted

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	close(api.fetchGate)

	select {
	case err := <-started:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("start: err = %v, want ErrClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("start never returned")
	}

	time.Sleep(60 * time.Millisecond)
	if c.State() != StateIdle {
		t.Fatalf("state = %s, want idle", c.State())
	}
	if n := events.count(EventTick); n != 0 {
		t.Fatalf("ticks after close = %d", n)
	}
	if n := len(api.submitCalls()); n != 0 {
		t.Fatalf("submits after close = %d", n)
	}
}

func TestConflictOnSaveAdoptsServerCompletion(t *testing.T) {
	api := newFakeAPI(3600, 10)
	c, events := startController(t, api, Options{TickInterval: time.Hour})
	ctx := context.Background()

	api.completeOnServer(model.SubmitExpired)
	if err := c.Answer(ctx, model.Choice(1)); err == nil {
		t.Fatal("expected the save to fail")
	}

	e := events.waitFor(t, EventSubmitted)
	if e.Reason != model.SubmitExpired {
		t.Fatalf("submitted reason = %s, want expired", e.Reason)
	}
	if c.State() != StateSubmitted {
		t.Fatalf("state = %s, want submitted", c.State())
	}
	if res := c.Result(); res == nil || res.Status != string(model.AttemptCompleted) {
		t.Fatalf("result = %+v", res)
	}

	if err := c.Answer(ctx, model.Choice(2)); !errors.Is(err, ErrNotActive) {
		t.Fatalf("answer after server completion: err = %v", err)
	}
	if err := c.Submit(ctx); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("submit after server completion: err = %v", err)
	}
	if n := api.saveCount(); n != 1 {
		t.Fatalf("saves = %d, want 1", n)
	}
	if n := len(api.submitCalls()); n != 0 {
		t.Fatalf("submit calls = %d, want 0", n)
	}
}

func TestConflictAfterDeadlineSubmits(t *testing.T) {
	api := newFakeAPI(3600, 10)
	c, events := startController(t, api, Options{TickInterval: time.Hour})

	api.mu.Lock()
	api.detail.RemainingSeconds = 0
	api.saveErr = apiError{conflict: true}
	api.mu.Unlock()

	_ = c.Answer(context.Background(), model.Choice(1))
	events.waitFor(t, EventSubmitted)

	calls := api.submitCalls()
	if len(calls) != 1 || calls[0] != model.SubmitTimeout {
		t.Fatalf("submit calls = %v, want [timeout]", calls)
	}
	if c.State() != StateSubmitted {
		t.Fatalf("state = %s", c.State())
	}
}

func TestStartOnCompletedAttempt(t *testing.T) {
	api := newFakeAPI(0, 10)
	api.detail.Status = string(model.AttemptCompleted)
	c, _ := startController(t, api, Options{})

	if c.State() != StateSubmitted {
		t.Fatalf("state = %s", c.State())
	}
	if err := c.Submit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("submit: err = %v", err)
	}
	if len(api.submitCalls()) != 0 {
		t.Fatal("completed attempt was submitted again")
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second start: err = %v", err)
	}
}

func TestCountdownStartStop(t *testing.T) {
	cd := NewCountdown(time.Millisecond)
	cd.Stop()

	expired := make(chan struct{})
	cd.Start(context.Background(), 3, nil, func() { close(expired) })
	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never expired")
	}
	cd.Stop()
	if cd.Remaining() != 0 {
		t.Fatalf("remaining = %d", cd.Remaining())
	}

	long := NewCountdown(time.Hour)
	fired := false
	long.Start(context.Background(), 5, nil, func() { fired = true })
	long.Stop()
	if fired || long.Remaining() != 5 {
		t.Fatalf("stopped countdown fired=%v remaining=%d", fired, long.Remaining())
	}
}
