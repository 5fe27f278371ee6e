package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"lynxbot/internal/util"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"
)

// Status is the terminal state of one dispatch.
type Status int

const (
	// StatusIgnored means the text was not a command invocation (no prefix
	// or unknown token). No reply is emitted.
	StatusIgnored Status = iota
	// StatusDenied means a gate or throttle refused the invocation. Exactly
	// one reply explains why.
	StatusDenied
	StatusSucceeded
	// StatusFailed means the handler returned an error, panicked or timed
	// out. Exactly one generic reply is emitted.
	StatusFailed
)

// Result describes how a dispatch ended, for logging and accounting.
type Result struct {
	Status  Status
	Command string
	Reason  Reason
	Err     error
}

// Replier delivers dispatcher-level notices (denials, failures) to the
// originating chat.
type Replier interface {
	Reply(c *Context, text string)
}

// DefaultTimeout bounds a single handler execution.
const DefaultTimeout = 2 * time.Minute

// Dispatcher resolves inbound text into a command invocation, runs the
// gates and throttles, executes the handler and contains its failures. A
// handler can never crash the process: panics are recovered and surfaced as
// HandlerFailure.
type Dispatcher struct {
	Registry  *Registry
	Gates     *Gatekeeper
	Cooldowns *CooldownTracker
	Flood     *FloodGate
	Replier   Replier
	Timeout   time.Duration
	Log       *zerolog.Logger
}

// Dispatch runs the full state machine for one inbound message. c must have
// its identity flags, Body and Localizer populated by the transport adapter.
func (d *Dispatcher) Dispatch(ctx context.Context, c *Context) Result {
	prefix := c.Config.CommandPrefix
	if !strings.HasPrefix(c.Body, prefix) {
		return Result{Status: StatusIgnored}
	}
	rest := strings.TrimSpace(strings.TrimPrefix(c.Body, prefix))
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Result{Status: StatusIgnored}
	}
	token := util.NormalizeString(strings.ToLower(fields[0]))
	c.Prefix = prefix
	c.Args = fields[1:]

	cmd, ok := d.Registry.Resolve(token)
	if !ok {
		// Not a known command: stay silent rather than spamming chats that
		// merely start lines with the prefix character.
		return Result{Status: StatusIgnored}
	}
	c.Command = cmd.Name

	if d.Flood != nil && !c.IsOwner && !d.Flood.Allow(c.Sender.User) {
		// Spammy callers get no reply at all, a denial notice would only
		// add to the noise.
		res := Result{Status: StatusDenied, Command: cmd.Name, Reason: ReasonFloodLimited}
		d.logResult(c, res)
		return res
	}

	if denial := d.Gates.Check(ctx, cmd, c); denial != nil {
		d.reply(c, denialMessage(c, cmd, denial))
		res := Result{Status: StatusDenied, Command: cmd.Name, Reason: denial.Reason}
		d.logResult(c, res)
		return res
	}

	cooldown := time.Duration(cmd.Cooldown) * time.Second
	if ok, remaining := d.Cooldowns.TryAcquire(cmd.Name, c.Sender.User, cooldown, time.Now()); !ok {
		denial := &Denial{Reason: ReasonCooldownActive, Remaining: remaining}
		d.reply(c, denialMessage(c, cmd, denial))
		res := Result{Status: StatusDenied, Command: cmd.Name, Reason: ReasonCooldownActive}
		d.logResult(c, res)
		return res
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	c.WithContext(runCtx)

	err := d.runSafe(cmd, c)
	if err == nil {
		res := Result{Status: StatusSucceeded, Command: cmd.Name}
		d.logResult(c, res)
		return res
	}

	reason := ReasonHandlerFailure
	if errors.Is(err, context.DeadlineExceeded) || runCtx.Err() == context.DeadlineExceeded {
		reason = ReasonTimeout
	}
	// The generic failure text deliberately carries nothing from err: no
	// tokens, URLs or stack frames reach the chat.
	d.reply(c, failureMessage(c, reason))
	res := Result{Status: StatusFailed, Command: cmd.Name, Reason: reason, Err: err}
	d.logResult(c, res)
	return res
}

func (d *Dispatcher) runSafe(cmd *Command, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return cmd.Run(c)
}

func (d *Dispatcher) reply(c *Context, text string) {
	if d.Replier != nil {
		d.Replier.Reply(c, text)
	}
}

func (d *Dispatcher) logResult(c *Context, res Result) {
	if d.Log == nil {
		return
	}
	evt := d.Log.Info()
	if res.Status == StatusFailed {
		evt = d.Log.Error().Err(res.Err)
	}
	evt.Str("Command", res.Command).
		Str("User", c.Sender.User).
		Str("Status", res.Status.String()).
		Str("Reason", res.Reason.String()).
		Send()
}

func (s Status) String() string {
	switch s {
	case StatusIgnored:
		return "Ignored"
	case StatusDenied:
		return "Denied"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	}
	return "Unknown"
}

func denialMessage(c *Context, cmd *Command, denial *Denial) string {
	switch denial.Reason {
	case ReasonGroupOnly:
		return c.Localize(&i18n.Message{
			ID:    "denyGroupOnly",
			Other: "This command only works in groups.",
		}, nil)
	case ReasonOwnerOnly:
		return c.Localize(&i18n.Message{
			ID:    "denyOwnerOnly",
			Other: "Only my owner can use this command.",
		}, nil)
	case ReasonAdminRequired:
		return c.Localize(&i18n.Message{
			ID:    "denyAdminRequired",
			Other: "You need to be a group admin to use this command.",
		}, nil)
	case ReasonBotNotAdmin:
		return c.Localize(&i18n.Message{
			ID:    "denyBotNotAdmin",
			Other: "I need to be a group admin to do that.",
		}, nil)
	case ReasonMetadataUnavailable:
		return c.Localize(&i18n.Message{
			ID:    "denyMetadataUnavailable",
			Other: "I could not check the group right now, try again later.",
		}, nil)
	case ReasonTooFewArgs:
		return c.Localize(&i18n.Message{
			ID:    "denyTooFewArgs",
			Other: "Missing arguments: {{.Command}} needs at least {{.Min}}.",
		}, map[string]any{"Command": c.Prefix + cmd.Name, "Min": cmd.MinArgs})
	case ReasonTooManyArgs:
		return c.Localize(&i18n.Message{
			ID:    "denyTooManyArgs",
			Other: "Too many arguments: {{.Command}} takes at most {{.Max}}.",
		}, map[string]any{"Command": c.Prefix + cmd.Name, "Max": cmd.MaxArgs})
	case ReasonCooldownActive:
		secs := int(math.Ceil(denial.Remaining.Seconds()))
		return c.Localize(&i18n.Message{
			ID:    "denyCooldown",
			Other: "Slow down, wait {{.Seconds}}s before using {{.Command}} again.",
		}, map[string]any{"Seconds": secs, "Command": c.Prefix + cmd.Name})
	}
	return c.Localize(&i18n.Message{
		ID:    "denyGeneric",
		Other: "You can't use this command right now.",
	}, nil)
}

func failureMessage(c *Context, reason Reason) string {
	if reason == ReasonTimeout {
		return c.Localize(&i18n.Message{
			ID:    "failTimeout",
			Other: "That took too long and was cancelled.",
		}, nil)
	}
	return c.Localize(&i18n.Message{
		ID:    "failGeneric",
		Other: "Something went wrong running that command.",
	}, nil)
}
