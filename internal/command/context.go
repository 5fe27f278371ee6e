package command

import (
	"context"

	"lynxbot/internal/config"
	"lynxbot/internal/database"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// Context is the invocation context handed to a command handler. The
// transport adapter normalizes the raw event into the flat fields once;
// handlers never dig through nested message payloads themselves.
type Context struct {
	Client    *whatsmeow.Client
	Config    *config.ConfigScheme
	DB        *database.DBInstance
	Msg       *events.Message
	Log       *zerolog.Logger
	Localizer *i18n.Localizer

	Sender       types.JID
	Chat         types.JID
	PushName     string
	IsGroup      bool
	IsGroupAdmin bool
	IsOwner      bool
	IsSudo       bool

	// Filled by the dispatcher during parsing.
	Body    string
	Prefix  string
	Command string
	Args    []string

	// Normalized introspection of the inbound payload.
	Mentions     []types.JID
	QuotedSender types.JID

	ctx context.Context
}

// Context returns the deadline-carrying context for this dispatch. Handlers
// must pass it to every outbound call.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext is used by the dispatcher (and tests) to bind the dispatch
// deadline.
func (c *Context) WithContext(ctx context.Context) {
	c.ctx = ctx
}

// Localize renders a message in the caller's language, falling back to the
// inline default.
func (c *Context) Localize(msg *i18n.Message, data map[string]any) string {
	if c.Localizer == nil {
		return msg.Other
	}
	return c.Localizer.MustLocalize(&i18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
}

// Target resolves the JID a moderation command acts on: the first mention,
// else the quoted participant.
func (c *Context) Target() (types.JID, bool) {
	if len(c.Mentions) > 0 {
		return c.Mentions[0], true
	}
	if !c.QuotedSender.IsEmpty() {
		return c.QuotedSender, true
	}
	return types.EmptyJID, false
}
