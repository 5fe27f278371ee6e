package command

import (
	"context"

	"go.mau.fi/whatsmeow/types"
)

// GroupInfoProvider reports whether the bot account itself is an admin of a
// group. Backed by the handler's group-metadata cache in production.
type GroupInfoProvider interface {
	IsBotGroupAdmin(ctx context.Context, chat types.JID) (bool, error)
}

// Gatekeeper evaluates a command's preconditions against an invocation. It
// holds no per-dispatch state.
type Gatekeeper struct {
	Groups GroupInfoProvider
}

// Check runs the precondition checks in fixed order, returning the first
// denial or nil. The ordering is part of the contract: the caller is told
// the most specific applicable reason, so cheaper and more specific checks
// run first.
func (g *Gatekeeper) Check(ctx context.Context, cmd *Command, c *Context) *Denial {
	if cmd.GroupOnly && !c.IsGroup {
		return &Denial{Reason: ReasonGroupOnly}
	}
	if cmd.OwnerOnly && !c.IsOwner {
		return &Denial{Reason: ReasonOwnerOnly}
	}
	if cmd.AdminOnly && !(c.IsGroupAdmin || c.IsOwner || c.IsSudo) {
		return &Denial{Reason: ReasonAdminRequired}
	}
	if cmd.BotAdminRequired {
		if g.Groups == nil {
			return &Denial{Reason: ReasonMetadataUnavailable}
		}
		isAdmin, err := g.Groups.IsBotGroupAdmin(ctx, c.Chat)
		if err != nil {
			return &Denial{Reason: ReasonMetadataUnavailable}
		}
		if !isAdmin {
			return &Denial{Reason: ReasonBotNotAdmin}
		}
	}
	if len(c.Args) < cmd.MinArgs {
		return &Denial{Reason: ReasonTooFewArgs}
	}
	if cmd.MaxArgs > 0 && len(c.Args) > cmd.MaxArgs {
		return &Denial{Reason: ReasonTooManyArgs}
	}
	return nil
}
