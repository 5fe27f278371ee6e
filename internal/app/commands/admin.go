package commands

import (
	"fmt"
	"strings"

	"lynxbot/internal/command"
	"lynxbot/internal/database"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"
)

func registerAdmin(reg *command.Registry) {
	reg.MustRegister(&command.Command{
		Name:             "kick",
		Aliases:          []string{"remove"},
		Category:         categoryAdmin,
		GroupOnly:        true,
		AdminOnly:        true,
		BotAdminRequired: true,
		Run: func(ctx *command.Context) error {
			target, ok := ctx.Target()
			if !ok {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "kicknotarget",
					Other: "Mention or quote the member to kick.",
				}, nil))
				return nil
			}
			if ctx.Config.IsOwner(target.User) {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "kickowner",
					Other: "I'm not kicking my owner.",
				}, nil))
				return nil
			}
			if _, err := ctx.Client.UpdateGroupParticipants(ctx.Chat, []types.JID{target}, whatsmeow.ParticipantChangeRemove); err != nil {
				return fmt.Errorf("Error removing participant: %w", err)
			}
			ctx.ReactMessage(ctx.Msg, "👋")
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:             "warn",
		Category:         categoryAdmin,
		GroupOnly:        true,
		AdminOnly:        true,
		BotAdminRequired: true,
		Run: func(ctx *command.Context) error {
			target, ok := ctx.Target()
			if !ok {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "warnnotarget",
					Other: "Mention or quote the member to warn.",
				}, nil))
				return nil
			}
			count, err := ctx.DB.AddWarn(target.User, ctx.Chat.User)
			if err != nil {
				return fmt.Errorf("Error saving warn: %w", err)
			}
			if count >= 3 {
				if _, err := ctx.Client.UpdateGroupParticipants(ctx.Chat, []types.JID{target}, whatsmeow.ParticipantChangeRemove); err != nil {
					return fmt.Errorf("Error removing participant after third warn: %w", err)
				}
				ctx.SendTextMessage(ctx.Chat, ctx.Localize(&i18n.Message{
					ID:    "warnkicked",
					Other: "@{{.User}} reached 3 warnings and was removed.",
				}, map[string]any{"User": target.User}), &command.MessageOptions{
					MentionedJid: []string{target.String()},
				})
				return nil
			}
			ctx.SendTextMessage(ctx.Chat, ctx.Localize(&i18n.Message{
				ID:    "warncount",
				Other: "@{{.User}} warned ({{.Count}}/3).",
			}, map[string]any{"User": target.User, "Count": count}), &command.MessageOptions{
				MentionedJid: []string{target.String()},
			})
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "unwarn",
		Category:  categoryAdmin,
		GroupOnly: true,
		AdminOnly: true,
		Run: func(ctx *command.Context) error {
			target, ok := ctx.Target()
			if !ok {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "warnnotarget",
					Other: "Mention or quote the member to warn.",
				}, nil))
				return nil
			}
			count, err := ctx.DB.RemoveWarn(target.User, ctx.Chat.User)
			if err != nil {
				return fmt.Errorf("Error removing warn: %w", err)
			}
			ctx.SendTextMessage(ctx.Chat, ctx.Localize(&i18n.Message{
				ID:    "unwarncount",
				Other: "@{{.User}} now has {{.Count}}/3 warnings.",
			}, map[string]any{"User": target.User, "Count": count}), &command.MessageOptions{
				MentionedJid: []string{target.String()},
			})
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "warns",
		Category:  categoryAdmin,
		GroupOnly: true,
		Run: func(ctx *command.Context) error {
			target, ok := ctx.Target()
			if !ok {
				target = ctx.Sender
			}
			participant, err := ctx.DB.GetParticipant(target.User, ctx.Chat.User)
			if err != nil {
				return fmt.Errorf("Error reading participant: %w", err)
			}
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "warnscmd",
				Other: "{{.User}} has {{.Count}}/3 warnings.",
			}, map[string]any{"User": target.User, "Count": participant.WarnCount}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:             "del",
		Aliases:          []string{"delete"},
		Category:         categoryAdmin,
		GroupOnly:        true,
		AdminOnly:        true,
		BotAdminRequired: true,
		Run: func(ctx *command.Context) error {
			quoted := ctx.Msg.Message.GetExtendedTextMessage().GetContextInfo()
			if quoted.GetStanzaID() == "" {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "delnoquote",
					Other: "Quote the message to delete.",
				}, nil))
				return nil
			}
			sender := ctx.QuotedSender
			if sender.IsEmpty() {
				sender = ctx.Sender
			}
			ctx.DeleteMessage(ctx.Chat, sender, quoted.GetStanzaID())
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:      "antilink",
		Category:  categoryAdmin,
		GroupOnly: true,
		AdminOnly: true,
		MinArgs:   1,
		MaxArgs:   1,
		Run:       toggleGroupFlag("antilink", func(g *database.Group, on bool) { g.IsAntiLink = on }),
	})

	reg.MustRegister(&command.Command{
		Name:      "antiwalink",
		Category:  categoryAdmin,
		GroupOnly: true,
		AdminOnly: true,
		MinArgs:   1,
		MaxArgs:   1,
		Run:       toggleGroupFlag("antiwalink", func(g *database.Group, on bool) { g.IsAntiWALink = on }),
	})

	reg.MustRegister(&command.Command{
		Name:      "tagall",
		Aliases:   []string{"everyone"},
		Category:  categoryAdmin,
		GroupOnly: true,
		AdminOnly: true,
		Cooldown:  30,
		Run: func(ctx *command.Context) error {
			info, err := ctx.Client.GetGroupInfo(ctx.Chat)
			if err != nil {
				return fmt.Errorf("Error fetching group info: %w", err)
			}
			var b strings.Builder
			mentions := make([]string, 0, len(info.Participants))
			for _, p := range info.Participants {
				fmt.Fprintf(&b, "@%s ", p.JID.User)
				mentions = append(mentions, p.JID.String())
			}
			ctx.SendTextMessage(ctx.Chat, strings.TrimSpace(b.String()), &command.MessageOptions{
				QuotedMessage: ctx.Msg,
				MentionedJid:  mentions,
			})
			return nil
		},
	})
}

// toggleGroupFlag builds a handler flipping one boolean moderation setting
// of the current group on or off.
func toggleGroupFlag(name string, apply func(*database.Group, bool)) func(ctx *command.Context) error {
	return func(ctx *command.Context) error {
		var on bool
		switch strings.ToLower(ctx.Args[0]) {
		case "on", "1", "true":
			on = true
		case "off", "0", "false":
			on = false
		default:
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "toggleusage",
				Other: "Use {{.Command}} on|off.",
			}, map[string]any{"Command": ctx.Prefix + name}))
			return nil
		}

		group, err := ctx.DB.GetGroupInfo(ctx.Chat.User)
		if err != nil {
			return fmt.Errorf("Error reading group settings: %w", err)
		}
		apply(group, on)
		if err := ctx.DB.SaveGroupInfo(group); err != nil {
			return fmt.Errorf("Error saving group settings: %w", err)
		}

		state := "off"
		if on {
			state = "on"
		}
		ctx.Reply(ctx.Localize(&i18n.Message{
			ID:    "toggledone",
			Other: "{{.Name}} is now {{.State}}.",
		}, map[string]any{"Name": name, "State": state}))
		return nil
	}
}
