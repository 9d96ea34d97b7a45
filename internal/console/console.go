// Package console implements the flowdeck engine: drifting metrics, a
// rotating workflow strip, a capped ops log, and the controller that
// owns them behind read-only snapshots.
//
// All mutations are serialized through one mutex. The two periodic
// loops (jittered metric ticks, fixed-interval rotation) and the
// advisor completion goroutine are the only background writers; user
// operations come in on the caller's goroutine. After every mutation a
// coalesced change signal is emitted for the presentation layer.
package console

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fixed console log lines.
const (
	bootCompleteLine = "SYSTEM_BOOT_COMPLETE"
	listeningLine    = "LISTENING_FOR_INPUT..."
	requestingLine   = "REQUESTING_AI_INSIGHT..."
	advisorFallback  = "AI_GATEWAY_TIMEOUT"
	briefSyncedLine  = "CAMPAIGN_BRIEF_SYNCED"
)

// advisorInstruction is the fixed instruction carried by every
// outbound advisor request.
const advisorInstruction = "Produce 5-8 words, uppercase, no punctuation, technical system-status tone."

// Advisor produces a short status line for the current console state.
// Implementations live in internal/advisor; the controller treats any
// returned error as a recoverable request failure.
type Advisor interface {
	StatusLine(ctx context.Context, prompt string) (string, error)
}

// Config wires a Controller.
type Config struct {
	// Advisor handles insight requests. A nil advisor makes every
	// request resolve to the fallback entry.
	Advisor Advisor

	// Rand drives the metric simulation. Defaults to a time-seeded
	// source.
	Rand *rand.Rand

	// Logger receives diagnostics. Defaults to a nop logger.
	Logger *zap.Logger

	// BriefPath and BriefText carry the campaign brief resolved at
	// startup, if any. The text feeds advisor prompts.
	BriefPath string
	BriefText string
}

// Controller owns the console state and its two periodic loops.
type Controller struct {
	mu       sync.Mutex
	metrics  MetricState
	active   int
	selected int // index into steps, -1 when none
	ring     logRing
	inFlight bool
	stopped  bool
	ticks    int64

	briefPath string
	briefText string

	sim     *Simulator
	advisor Advisor
	logger  *zap.Logger

	rotateEvery time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup

	changed chan struct{}
}

// New creates a stopped controller with the fixed initial metrics and
// the two boot log entries. Call Start to begin ticking.
func New(cfg Config) *Controller {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		metrics:     initialMetrics(),
		selected:    -1,
		sim:         NewSimulator(rng),
		advisor:     cfg.Advisor,
		logger:      logger,
		briefPath:   cfg.BriefPath,
		briefText:   strings.TrimSpace(cfg.BriefText),
		rotateEvery: rotatePeriod,
		changed:     make(chan struct{}, 1),
	}
	now := time.Now()
	c.ring.append(bootCompleteLine, KindInfo, now)
	c.ring.append(listeningLine, KindInfo, now)
	return c
}

// Start launches the metric and rotation loops. It fails if the
// controller is already running or was stopped.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return errors.New("console: controller stopped")
	}
	if c.cancel != nil {
		return errors.New("console: already started")
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(2)
	go c.metricLoop(ctx)
	go c.rotateLoop(ctx)

	c.logger.Info("console started",
		zap.String("brief", c.briefPath),
		zap.Duration("rotate_every", c.rotateEvery))
	return nil
}

// Stop cancels both loops and waits for them to exit. No state changes
// after it returns; a late advisor result is discarded. Calling Stop
// again is a no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
	c.logger.Info("console stopped")
	return nil
}

// Changes returns a channel that receives a signal after any state
// mutation. The channel has capacity 1; a slow consumer coalesces
// signals instead of blocking the engine.
func (c *Controller) Changes() <-chan struct{} {
	return c.changed
}

// SelectStep opens the detail view for the step with the given id and
// reports whether the id names a catalog entry. Rotation is never
// affected by selection.
func (c *Controller) SelectStep(id string) bool {
	i := stepIndex(id)
	if i < 0 {
		return false
	}
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return false
	}
	c.selected = i
	c.mu.Unlock()
	c.notify()
	return true
}

// ClearSelection closes the detail view.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.selected = -1
	c.mu.Unlock()
	c.notify()
}

// LogUserAction appends a user-initiated info entry, such as the
// deploy shortcut.
func (c *Controller) LogUserAction(text string) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.ring.append(text, KindInfo, time.Now())
	c.mu.Unlock()
	c.notify()
}

// ReloadBrief swaps the campaign context used for advisor prompts and
// notes the sync in the ops log.
func (c *Controller) ReloadBrief(text string) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.briefText = strings.TrimSpace(text)
	c.ring.append(briefSyncedLine, KindInfo, time.Now())
	c.mu.Unlock()
	c.notify()
}

// TriggerAdvisor issues one insight request. While a request is in
// flight further triggers are ignored; failures resolve to the fixed
// fallback entry and are never retried automatically.
func (c *Controller) TriggerAdvisor() {
	c.mu.Lock()
	if c.stopped || c.inFlight {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.ring.append(requestingLine, KindInfo, time.Now())
	prompt := c.buildPromptLocked()
	c.mu.Unlock()
	c.notify()

	id := uuid.NewString()
	c.logger.Debug("advisor request", zap.String("request_id", id))
	go c.completeAdvisor(id, prompt)
}

// Snapshot returns a read-only copy of the console state. The log
// slice is copied; mutating the returned value never touches the
// controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Metrics:     c.metrics,
		ActiveStep:  c.active,
		Log:         c.ring.snapshot(),
		AdvisorBusy: c.inFlight,
		Ticks:       c.ticks,
		BriefPath:   c.briefPath,
		BuiltAt:     time.Now(),
	}
	if c.selected >= 0 {
		s := steps[c.selected]
		snap.Selected = &s
	}
	return snap
}

func (c *Controller) metricLoop(ctx context.Context) {
	defer c.wg.Done()
	timer := time.NewTimer(c.sim.NextDelay())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			c.applyTick()
			timer.Reset(c.sim.NextDelay())
		}
	}
}

func (c *Controller) rotateLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.rotateEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.applyRotate()
		}
	}
}

func (c *Controller) applyTick() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.metrics = c.sim.Tick(c.metrics)
	c.ticks++
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) applyRotate() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.active = nextStep(c.active)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) completeAdvisor(id, prompt string) {
	text, err := c.callAdvisor(prompt)

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.logger.Debug("advisor result after stop, dropped", zap.String("request_id", id))
		return
	}
	if err != nil {
		c.ring.append(advisorFallback, KindError, time.Now())
		c.logger.Warn("advisor request failed", zap.String("request_id", id), zap.Error(err))
	} else {
		c.ring.append(text, KindAI, time.Now())
		c.logger.Debug("advisor result", zap.String("request_id", id), zap.String("text", text))
	}
	c.inFlight = false
	c.mu.Unlock()
	c.notify()
}

// callAdvisor runs the outbound request and normalizes the response.
// An empty response after trimming counts as a failure.
func (c *Controller) callAdvisor(prompt string) (string, error) {
	if c.advisor == nil {
		return "", errors.New("no advisor configured")
	}
	text, err := c.advisor.StatusLine(context.Background(), prompt)
	if err != nil {
		return "", err
	}
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return "", errors.New("empty advisor response")
	}
	return text, nil
}

func (c *Controller) buildPromptLocked() string {
	var b strings.Builder
	b.WriteString(advisorInstruction)
	fmt.Fprintf(&b, " Current state: cpu load %.1f%%, flow velocity %.0f, views %d, conversion rate %.2f%%.",
		c.metrics.CPULoad, c.metrics.FlowVelocity, c.metrics.Views, c.metrics.ConversionRate)
	if c.briefText != "" {
		b.WriteString("\nCampaign brief:\n")
		b.WriteString(c.briefText)
	}
	return b.String()
}

// notify signals subscribers without ever blocking a mutation.
func (c *Controller) notify() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}
