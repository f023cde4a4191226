// Package session drives one student's test sitting from the client side: it
// keeps the local countdown, tracks per-question time, applies answers
// optimistically and submits the attempt when time runs out or an anti-cheat
// signal fires.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotActive        = errors.New("session is not active")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrNotBlocked       = errors.New("no failed submission to retry")
	ErrUnknownQuestion  = errors.New("question is not part of this attempt")
	ErrClosed           = errors.New("session is closed")
)

// AttemptAPI is the server side of a sitting. *client.Client implements it.
type AttemptAPI interface {
	FetchAttempt(ctx context.Context, attemptID uint) (*dto.AttemptDetailDTO, error)
	SaveResponse(ctx context.Context, attemptID, questionID uint, req dto.ResponseUpsertDTO) (*dto.ResponseDTO, error)
	SubmitAttempt(ctx context.Context, attemptID uint, reason model.SubmitReason) (*dto.AttemptDetailDTO, error)
}

type State int

const (
	StateIdle State = iota
	StateActive
	StateSubmitting
	StateSubmitted
	// StateSubmitBlocked means every submit try failed. The UI should block
	// the exam and offer RetrySubmit.
	StateSubmitBlocked
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateSubmitBlocked:
		return "submit_blocked"
	}
	return "idle"
}

type Signal int

const (
	SignalFocusLost Signal = iota + 1
	SignalFullscreenExit
	SignalRestrictedKey
	SignalContextMenu
)

type EventKind string

const (
	EventTick         EventKind = "tick"
	EventWarning      EventKind = "warning"
	EventSaveFailed   EventKind = "save_failed"
	EventSubmitting   EventKind = "submitting"
	EventSubmitted    EventKind = "submitted"
	EventSubmitFailed EventKind = "submit_failed"
)

type Event struct {
	Kind       EventKind
	Remaining  int64
	QuestionID uint
	Reason     model.SubmitReason
	Message    string
	Err        error
}

// LocalResponse is the client's view of one question's response.
type LocalResponse struct {
	QuestionID       uint
	Answer           model.Answer
	Status           model.ResponseStatus
	TimeSpentSeconds int64
}

type Options struct {
	// TickInterval is one countdown second. Defaults to time.Second.
	TickInterval time.Duration
	// SubmitRetries is how many times a failed submit is repeated before the
	// session blocks.
	SubmitRetries int
	RetryBackoff  time.Duration
	SubmitTimeout time.Duration
	Now           func() time.Time
	// OnEvent is called without the controller lock held, possibly from the
	// countdown goroutine.
	OnEvent func(Event)
}

func (o *Options) withDefaults() {
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.SubmitRetries < 0 {
		o.SubmitRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = time.Second
	}
	if o.SubmitTimeout <= 0 {
		o.SubmitTimeout = 30 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.OnEvent == nil {
		o.OnEvent = func(Event) {}
	}
}

type Controller struct {
	api       AttemptAPI
	attemptID uint
	opts      Options
	countdown *Countdown

	// submitted is the one-shot guard shared by the countdown, anti-cheat
	// signals and the manual submit button.
	submitted atomic.Bool

	mu         sync.Mutex
	state      State
	examTitle  string
	questions  []dto.QuestionDTO
	index      map[uint]int
	current    int
	shownAt    time.Time
	carry      map[uint]time.Duration
	responses  map[uint]LocalResponse
	confirmed  map[uint]LocalResponse
	seq        map[uint]uint64
	unsent     map[uint]int64
	violations int
	reason     model.SubmitReason
	result     *dto.AttemptDetailDTO

	cancel context.CancelFunc
	group  *errgroup.Group
	gctx   context.Context
	closed chan struct{}
	once   sync.Once
}

func New(api AttemptAPI, attemptID uint, opts Options) *Controller {
	opts.withDefaults()
	return &Controller{
		api:       api,
		attemptID: attemptID,
		opts:      opts,
		countdown: NewCountdown(opts.TickInterval),
		index:     map[uint]int{},
		responses: map[uint]LocalResponse{},
		confirmed: map[uint]LocalResponse{},
		seq:       map[uint]uint64{},
		carry:     map[uint]time.Duration{},
		unsent:    map[uint]int64{},
		closed:    make(chan struct{}),
	}
}

// Start loads the attempt from the server and starts the countdown from the
// server's remaining time. An attempt that is already completed puts the
// session straight into StateSubmitted. Start after Close, or a Close while
// the attempt is still loading, returns ErrClosed.
func (c *Controller) Start(ctx context.Context) error {
	if c.isClosed() {
		return ErrClosed
	}
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.mu.Unlock()

	detail, err := c.api.FetchAttempt(ctx, c.attemptID)
	if err != nil {
		return fmt.Errorf("load attempt %d: %w", c.attemptID, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(runCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	// Close only sees what is published under mu, so the check and the
	// countdown start stay inside the same critical section.
	if c.isClosed() {
		cancel()
		return ErrClosed
	}
	if c.state != StateIdle {
		cancel()
		return ErrAlreadyStarted
	}
	c.cancel, c.group, c.gctx = cancel, group, gctx
	c.load(detail)
	if detail.Status == string(model.AttemptCompleted) {
		c.submitted.Store(true)
		c.state = StateSubmitted
		c.result = detail
		return nil
	}
	c.state = StateActive

	c.countdown.Start(gctx, detail.RemainingSeconds,
		func(left int64) { c.opts.OnEvent(Event{Kind: EventTick, Remaining: left}) },
		func() { c.forceSubmit(model.SubmitTimeout) },
	)
	log.Debug().Uint("attemptID", c.attemptID).Int64("remaining", detail.RemainingSeconds).Msg("Test session started")
	return nil
}

func (c *Controller) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *Controller) load(detail *dto.AttemptDetailDTO) {
	c.examTitle = detail.ExamTitle
	c.questions = detail.Questions
	for i, q := range c.questions {
		c.index[q.ID] = i
	}
	for _, r := range detail.Responses {
		lr := fromDTO(r)
		c.confirmed[r.QuestionID] = lr
		c.responses[r.QuestionID] = lr
	}
	c.current = 0
	c.shownAt = c.opts.Now()
}

// Close stops the countdown and waits for any forced submit in flight. No
// callback fires after Close returns, and the controller cannot be started
// again.
func (c *Controller) Close() error {
	c.once.Do(func() { close(c.closed) })
	c.mu.Lock()
	cancel, group := c.cancel, c.group
	c.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	c.countdown.Stop()
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Remaining() int64 { return c.countdown.Remaining() }

func (c *Controller) ExamTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.examTitle
}

func (c *Controller) Violations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.violations
}

func (c *Controller) Questions() []dto.QuestionDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dto.QuestionDTO, len(c.questions))
	copy(out, c.questions)
	return out
}

// Current returns the question on screen. ok is false for an empty exam.
func (c *Controller) Current() (q dto.QuestionDTO, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.questions) == 0 {
		return dto.QuestionDTO{}, false
	}
	return c.questions[c.current], true
}

// Response returns the local view of one question's response. Unvisited
// questions report ResponseNotVisited.
func (c *Controller) Response(questionID uint) LocalResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.responseLocked(questionID)
}

func (c *Controller) Responses() map[uint]LocalResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[uint]LocalResponse, len(c.responses))
	for k, v := range c.responses {
		out[k] = v
	}
	return out
}

// Result is the completed attempt returned by the server, nil until the
// submission went through.
func (c *Controller) Result() *dto.AttemptDetailDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) responseLocked(questionID uint) LocalResponse {
	if r, ok := c.responses[questionID]; ok {
		return r
	}
	return LocalResponse{QuestionID: questionID, Status: model.ResponseNotVisited}
}

// Answer records the answer for the current question and saves it.
func (c *Controller) Answer(ctx context.Context, answer model.Answer) error {
	return c.persistCurrent(ctx, func(r *LocalResponse) {
		r.Answer = answer
		r.Status = statusFor(answer, isMarkedForReview(r.Status))
	})
}

func (c *Controller) ClearAnswer(ctx context.Context) error {
	return c.Answer(ctx, model.NoAnswer())
}

func (c *Controller) ToggleMarkForReview(ctx context.Context) error {
	return c.persistCurrent(ctx, func(r *LocalResponse) {
		r.Status = statusFor(r.Answer, !isMarkedForReview(r.Status))
	})
}

// GoTo saves the question being left, with the time spent on it, and shows
// questionID. The navigation happens even when the save fails; the unsaved
// time is sent with the next save of that question.
func (c *Controller) GoTo(ctx context.Context, questionID uint) error {
	c.mu.Lock()
	idx, ok := c.index[questionID]
	c.mu.Unlock()
	if !ok {
		return ErrUnknownQuestion
	}

	err := c.persistCurrent(ctx, markVisited)

	c.mu.Lock()
	if c.state == StateActive {
		c.current = idx
		c.shownAt = c.opts.Now()
	}
	c.mu.Unlock()
	return err
}

func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	if len(c.questions) == 0 || c.current+1 >= len(c.questions) {
		c.mu.Unlock()
		return nil
	}
	id := c.questions[c.current+1].ID
	c.mu.Unlock()
	return c.GoTo(ctx, id)
}

func (c *Controller) Previous(ctx context.Context) error {
	c.mu.Lock()
	if c.current == 0 || len(c.questions) == 0 {
		c.mu.Unlock()
		return nil
	}
	id := c.questions[c.current-1].ID
	c.mu.Unlock()
	return c.GoTo(ctx, id)
}

func markVisited(r *LocalResponse) {
	if r.Status == model.ResponseNotVisited {
		r.Status = model.ResponseNotAnswered
	}
}

// persistCurrent applies mutate to the current question locally, then saves
// it. A failed save rolls the local view back to the last server state unless
// a newer save for the same question started in the meantime.
func (c *Controller) persistCurrent(ctx context.Context, mutate func(*LocalResponse)) error {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	if len(c.questions) == 0 {
		c.mu.Unlock()
		return nil
	}
	qid := c.questions[c.current].ID
	delta := c.takeElapsedLocked(qid)

	next := c.responseLocked(qid)
	mutate(&next)
	markVisited(&next)
	next.TimeSpentSeconds += delta
	c.responses[qid] = next
	c.seq[qid]++
	seq := c.seq[qid]
	c.mu.Unlock()

	saved, err := c.api.SaveResponse(ctx, c.attemptID, qid, dto.ResponseUpsertDTO{
		Answer:         next.Answer,
		Status:         string(next.Status),
		TimeSpentDelta: delta,
	})

	c.mu.Lock()
	if err != nil {
		c.unsent[qid] += delta
		if c.seq[qid] == seq {
			if prev, ok := c.confirmed[qid]; ok {
				c.responses[qid] = prev
			} else {
				delete(c.responses, qid)
			}
		}
		c.mu.Unlock()
		log.Warn().Err(err).Uint("attemptID", c.attemptID).Uint("questionID", qid).Msg("Saving response failed, local state rolled back")
		c.opts.OnEvent(Event{Kind: EventSaveFailed, QuestionID: qid, Err: err})
		if isConflict(err) {
			c.reconcile(ctx)
		}
		return err
	}
	lr := fromDTO(*saved)
	c.confirmed[qid] = lr
	if c.seq[qid] == seq {
		c.responses[qid] = lr
	}
	c.mu.Unlock()
	return nil
}

// takeElapsedLocked turns the whole seconds the current question has been on
// screen, plus anything a failed save left behind, into a delta. The
// sub-second remainder carries into the next save of the same question.
func (c *Controller) takeElapsedLocked(qid uint) int64 {
	now := c.opts.Now()
	elapsed := now.Sub(c.shownAt) + c.carry[qid]
	if elapsed < 0 {
		elapsed = 0
	}
	whole := elapsed / time.Second
	c.carry[qid] = elapsed - whole*time.Second
	c.shownAt = now

	delta := int64(whole) + c.unsent[qid]
	delete(c.unsent, qid)
	return delta
}

// HandleSignal reacts to a browser anti-cheat signal. Focus loss and leaving
// fullscreen submit the attempt in the background; restricted keys and the
// context menu only raise a warning. Signals are ignored unless the session
// is active.
func (c *Controller) HandleSignal(sig Signal) {
	c.mu.Lock()
	if c.state != StateActive || c.submitted.Load() {
		c.mu.Unlock()
		return
	}
	c.violations++
	c.mu.Unlock()

	switch sig {
	case SignalFocusLost:
		c.forceSubmit(model.SubmitFocusLost)
	case SignalFullscreenExit:
		c.forceSubmit(model.SubmitFullscreenExit)
	case SignalRestrictedKey:
		c.opts.OnEvent(Event{Kind: EventWarning, Message: "This key combination is disabled during the test"})
	case SignalContextMenu:
		c.opts.OnEvent(Event{Kind: EventWarning, Message: "Right click is disabled during the test"})
	}
}

// Submit is the student's own submission. It saves the current question
// first and blocks until the server answered or the retry budget ran out.
func (c *Controller) Submit(ctx context.Context) error {
	if c.State() == StateIdle {
		return ErrNotActive
	}
	if !c.submitted.CompareAndSwap(false, true) {
		return ErrAlreadySubmitted
	}
	return c.submit(ctx, model.SubmitManual)
}

// RetrySubmit repeats a submission that ended in StateSubmitBlocked.
func (c *Controller) RetrySubmit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateSubmitBlocked {
		c.mu.Unlock()
		return ErrNotBlocked
	}
	c.state = StateSubmitting
	reason := c.reason
	c.mu.Unlock()
	return c.send(ctx, reason)
}

// forceSubmit runs a timeout or violation submit on the session's group.
func (c *Controller) forceSubmit(reason model.SubmitReason) {
	if c.isClosed() || !c.submitted.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	group, gctx := c.group, c.gctx
	c.mu.Unlock()
	if c.isClosed() {
		return
	}
	group.Go(func() error {
		_ = c.submit(context.WithoutCancel(gctx), reason)
		return nil
	})
}

func (c *Controller) submit(ctx context.Context, reason model.SubmitReason) error {
	if err := c.persistCurrent(ctx, markVisited); err != nil && !errors.Is(err, ErrNotActive) {
		log.Warn().Err(err).Uint("attemptID", c.attemptID).Msg("Final save before submit failed")
	}

	c.mu.Lock()
	if c.state == StateSubmitted {
		// The final save found the attempt already completed on the server.
		c.mu.Unlock()
		return nil
	}
	if c.state != StateActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	c.state = StateSubmitting
	c.reason = reason
	c.mu.Unlock()

	c.opts.OnEvent(Event{Kind: EventSubmitting, Reason: reason})
	return c.send(ctx, reason)
}

type retryable interface {
	Retryable() bool
}

type conflict interface {
	Conflict() bool
}

func isConflict(err error) bool {
	var c conflict
	return errors.As(err, &c) && c.Conflict()
}

// reconcile re-reads the attempt after the server refused a write because of
// its state. A completed attempt ends the session with the server's result;
// one whose time ran out is submitted.
func (c *Controller) reconcile(ctx context.Context) {
	detail, err := c.api.FetchAttempt(ctx, c.attemptID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", c.attemptID).Msg("Reloading attempt after conflict failed")
		return
	}
	if detail.Status != string(model.AttemptCompleted) {
		if detail.RemainingSeconds <= 0 {
			c.forceSubmit(model.SubmitTimeout)
		}
		return
	}

	c.submitted.Store(true)
	c.mu.Lock()
	if c.state == StateSubmitted {
		c.mu.Unlock()
		return
	}
	c.state = StateSubmitted
	c.result = detail
	for _, r := range detail.Responses {
		lr := fromDTO(r)
		c.confirmed[r.QuestionID] = lr
		c.responses[r.QuestionID] = lr
	}
	c.mu.Unlock()
	c.stopCountdown()

	reason := model.SubmitReason(detail.SubmitReason)
	log.Info().Uint("attemptID", c.attemptID).Str("reason", string(reason)).Msg("Attempt was completed on the server")
	c.opts.OnEvent(Event{Kind: EventSubmitted, Reason: reason})
}

func isRetryable(err error) bool {
	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return true
}

// send calls SubmitAttempt until it succeeds, a non-retryable error comes
// back, or the retry budget is spent. A submission that started is not cut
// short by ctx; only Close stops the waits between tries.
func (c *Controller) send(ctx context.Context, reason model.SubmitReason) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for try := 0; try <= c.opts.SubmitRetries; try++ {
		if try > 0 {
			timer := time.NewTimer(c.opts.RetryBackoff * time.Duration(try))
			select {
			case <-timer.C:
			case <-c.closed:
				timer.Stop()
				return c.blocked(reason, err)
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, c.opts.SubmitTimeout)
		var res *dto.AttemptDetailDTO
		res, err = c.api.SubmitAttempt(reqCtx, c.attemptID, reason)
		cancel()
		if err == nil {
			c.mu.Lock()
			c.state = StateSubmitted
			c.result = res
			c.mu.Unlock()
			c.stopCountdown()
			log.Info().Uint("attemptID", c.attemptID).Str("reason", string(reason)).Msg("Attempt submitted")
			c.opts.OnEvent(Event{Kind: EventSubmitted, Reason: reason})
			return nil
		}
		log.Warn().Err(err).Uint("attemptID", c.attemptID).Int("try", try+1).Msg("Submit failed")
		if !isRetryable(err) {
			break
		}
	}
	return c.blocked(reason, err)
}

func (c *Controller) blocked(reason model.SubmitReason, err error) error {
	c.mu.Lock()
	if c.state == StateSubmitted {
		c.mu.Unlock()
		return nil
	}
	c.state = StateSubmitBlocked
	c.mu.Unlock()
	c.opts.OnEvent(Event{Kind: EventSubmitFailed, Reason: reason, Err: err})
	return fmt.Errorf("submit attempt %d: %w", c.attemptID, err)
}

// stopCountdown cancels the ticker without waiting, since the caller may be
// the countdown goroutine itself.
func (c *Controller) stopCountdown() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func fromDTO(r dto.ResponseDTO) LocalResponse {
	return LocalResponse{
		QuestionID:       r.QuestionID,
		Answer:           r.Answer,
		Status:           model.ResponseStatus(r.Status),
		TimeSpentSeconds: r.TimeSpentSeconds,
	}
}

func isMarkedForReview(s model.ResponseStatus) bool {
	return s == model.ResponseMarkedForReview || s == model.ResponseMarkedForReviewAnswered
}

func statusFor(a model.Answer, review bool) model.ResponseStatus {
	switch {
	case review && a.IsEmpty():
		return model.ResponseMarkedForReview
	case review:
		return model.ResponseMarkedForReviewAnswered
	case a.IsEmpty():
		return model.ResponseNotAnswered
	}
	return model.ResponseAnswered
}
