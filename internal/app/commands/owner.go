package commands

import (
	"fmt"
	"strings"

	"lynxbot/internal/command"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func registerOwner(reg *command.Registry) {
	reg.MustRegister(&command.Command{
		Name:      "ban",
		Category:  categoryOwner,
		OwnerOnly: true,
		Run:       setBanned(true),
	})

	reg.MustRegister(&command.Command{
		Name:      "unban",
		Category:  categoryOwner,
		OwnerOnly: true,
		Run:       setBanned(false),
	})

	reg.MustRegister(&command.Command{
		Name:      "setprefix",
		Category:  categoryOwner,
		OwnerOnly: true,
		MinArgs:   1,
		MaxArgs:   1,
		Run: func(ctx *command.Context) error {
			prefix := ctx.Args[0]
			if len(prefix) > 3 {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "setprefixtoolong",
					Other: "Prefixes longer than 3 characters are unusable.",
				}, nil))
				return nil
			}
			// The dispatcher reads the shared config on every parse, so the
			// new prefix takes effect immediately.
			ctx.Config.CommandPrefix = prefix
			if err := ctx.Config.SaveConfig(); err != nil {
				ctx.Log.Warn().Err(err).Msg("Error persisting config")
			}
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "setprefixdone",
				Other: "Prefix changed to {{.Prefix}}",
			}, map[string]any{"Prefix": prefix}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "bot",
		Category:  categoryOwner,
		GroupOnly: true,
		OwnerOnly: true,
		MinArgs:   1,
		MaxArgs:   1,
		Run: func(ctx *command.Context) error {
			var disabled bool
			switch strings.ToLower(ctx.Args[0]) {
			case "on":
				disabled = false
			case "off":
				disabled = true
			default:
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "botusage",
					Other: "Use {{.Command}} on|off.",
				}, map[string]any{"Command": ctx.Prefix + "bot"}))
				return nil
			}
			group, err := ctx.DB.GetGroupInfo(ctx.Chat.User)
			if err != nil {
				return fmt.Errorf("Error reading group settings: %w", err)
			}
			group.IsBotDisabled = disabled
			if err := ctx.DB.SaveGroupInfo(group); err != nil {
				return fmt.Errorf("Error saving group settings: %w", err)
			}
			ctx.ReactMessage(ctx.Msg, "✅")
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "broadcast",
		Category:  categoryOwner,
		OwnerOnly: true,
		MinArgs:   1,
		Cooldown:  60,
		Run: func(ctx *command.Context) error {
			text := strings.Join(ctx.Args, " ")
			groups, err := ctx.Client.GetJoinedGroups()
			if err != nil {
				return fmt.Errorf("Error listing joined groups: %w", err)
			}
			for _, group := range groups {
				ctx.SendTextMessage(group.JID, text, nil)
			}
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "broadcastdone",
				Other: "Sent to {{.Count}} groups.",
			}, map[string]any{"Count": len(groups)}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "lastcmds",
		Category:  categoryOwner,
		OwnerOnly: true,
		Hidden:    true,
		Run: func(ctx *command.Context) error {
			logs, err := ctx.DB.RecentCommandLogs(10)
			if err != nil {
				return fmt.Errorf("Error reading command logs: %w", err)
			}
			if len(logs) == 0 {
				ctx.Reply("No commands logged yet.")
				return nil
			}
			var b strings.Builder
			for _, l := range logs {
				fmt.Fprintf(&b, "%s  %s  %s  %s\n", l.CreatedAt.Format("15:04:05"), l.UserID, l.Command, l.Status)
			}
			ctx.Reply(b.String())
			return nil
		},
	})
}

func setBanned(banned bool) func(ctx *command.Context) error {
	return func(ctx *command.Context) error {
		target, ok := ctx.Target()
		if !ok {
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "bannotarget",
				Other: "Mention or quote the user.",
			}, nil))
			return nil
		}
		if err := ctx.DB.SetBanned(target.User, banned); err != nil {
			return fmt.Errorf("Error updating ban state: %w", err)
		}
		if banned {
			ctx.ReactMessage(ctx.Msg, "🔨")
		} else {
			ctx.ReactMessage(ctx.Msg, "🕊️")
		}
		return nil
	}
}
