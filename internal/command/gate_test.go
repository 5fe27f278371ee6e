package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/types"
)

type fakeGroups struct {
	isAdmin bool
	err     error
}

func (f fakeGroups) IsBotGroupAdmin(ctx context.Context, chat types.JID) (bool, error) {
	return f.isAdmin, f.err
}

func TestGateGroupOnly(t *testing.T) {
	g := &Gatekeeper{}
	cmd := &Command{Name: "kick", GroupOnly: true, Run: noop}

	denial := g.Check(context.Background(), cmd, &Context{IsGroup: false})
	require.NotNil(t, denial)
	require.Equal(t, ReasonGroupOnly, denial.Reason)

	require.Nil(t, g.Check(context.Background(), cmd, &Context{IsGroup: true}))
}

func TestGateOwnerOnly(t *testing.T) {
	g := &Gatekeeper{}
	cmd := &Command{Name: "ban", OwnerOnly: true, Run: noop}

	denial := g.Check(context.Background(), cmd, &Context{IsSudo: true})
	require.NotNil(t, denial)
	require.Equal(t, ReasonOwnerOnly, denial.Reason, "sudo does not satisfy owner-only")

	require.Nil(t, g.Check(context.Background(), cmd, &Context{IsOwner: true}))
}

func TestGateAdminRequired(t *testing.T) {
	g := &Gatekeeper{}
	cmd := &Command{Name: "warn", AdminOnly: true, Run: noop}

	denial := g.Check(context.Background(), cmd, &Context{IsGroup: true})
	require.NotNil(t, denial)
	require.Equal(t, ReasonAdminRequired, denial.Reason)

	for _, c := range []*Context{
		{IsGroup: true, IsGroupAdmin: true},
		{IsGroup: true, IsOwner: true},
		{IsGroup: true, IsSudo: true},
	} {
		require.Nil(t, g.Check(context.Background(), cmd, c))
	}
}

func TestGateBotAdminRequired(t *testing.T) {
	cmd := &Command{Name: "kick", BotAdminRequired: true, Run: noop}
	ctx := &Context{IsGroup: true}

	g := &Gatekeeper{Groups: fakeGroups{isAdmin: false}}
	denial := g.Check(context.Background(), cmd, ctx)
	require.NotNil(t, denial)
	require.Equal(t, ReasonBotNotAdmin, denial.Reason)

	g = &Gatekeeper{Groups: fakeGroups{err: errors.New("timeout")}}
	denial = g.Check(context.Background(), cmd, ctx)
	require.NotNil(t, denial)
	require.Equal(t, ReasonMetadataUnavailable, denial.Reason, "metadata fetch failure denies, never crashes")

	g = &Gatekeeper{Groups: fakeGroups{isAdmin: true}}
	require.Nil(t, g.Check(context.Background(), cmd, ctx))
}

func TestGateArgBounds(t *testing.T) {
	g := &Gatekeeper{}
	cmd := &Command{Name: "warn", MinArgs: 1, MaxArgs: 1, Run: noop}

	denial := g.Check(context.Background(), cmd, &Context{})
	require.Equal(t, ReasonTooFewArgs, denial.Reason)

	denial = g.Check(context.Background(), cmd, &Context{Args: []string{"a", "b"}})
	require.Equal(t, ReasonTooManyArgs, denial.Reason)

	require.Nil(t, g.Check(context.Background(), cmd, &Context{Args: []string{"a"}}))
}

func TestGateUnboundedMaxArgs(t *testing.T) {
	g := &Gatekeeper{}
	cmd := &Command{Name: "broadcast", Run: noop}

	require.Nil(t, g.Check(context.Background(), cmd, &Context{Args: make([]string, 100)}))
}

func TestGateOrderingPrecedence(t *testing.T) {
	g := &Gatekeeper{Groups: fakeGroups{isAdmin: false}}
	cmd := &Command{
		Name:             "setup",
		GroupOnly:        true,
		OwnerOnly:        true,
		AdminOnly:        true,
		BotAdminRequired: true,
		MinArgs:          2,
		Run:              noop,
	}

	// Fails every check: the earliest one wins.
	denial := g.Check(context.Background(), cmd, &Context{})
	require.Equal(t, ReasonGroupOnly, denial.Reason)

	// In a group but not owner: owner-only outranks admin and bot-admin.
	denial = g.Check(context.Background(), cmd, &Context{IsGroup: true})
	require.Equal(t, ReasonOwnerOnly, denial.Reason)

	// Owner in a group: the bot-admin check is next.
	denial = g.Check(context.Background(), cmd, &Context{IsGroup: true, IsOwner: true})
	require.Equal(t, ReasonBotNotAdmin, denial.Reason)
}
