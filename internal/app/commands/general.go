package commands

import (
	"fmt"
	"strings"
	"time"

	"lynxbot/internal/command"
	"lynxbot/internal/tools/media"
	tmsg "lynxbot/internal/tools/messages"

	"github.com/hbakhtiyor/strsim"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var startedAt = time.Now()

func registerGeneral(reg *command.Registry) {
	reg.MustRegister(&command.Command{
		Name:     "ping",
		Category: categoryGeneral,
		Cooldown: 3,
		Run: func(ctx *command.Context) error {
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "pingcmd",
				Other: "Pong!",
			}, nil))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "uptime",
		Category: categoryGeneral,
		Cooldown: 5,
		Run: func(ctx *command.Context) error {
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "uptimecmd",
				Other: "Online for {{.Uptime}}.",
			}, map[string]any{"Uptime": time.Since(startedAt).Round(time.Second).String()}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "owner",
		Category: categoryGeneral,
		Run: func(ctx *command.Context) error {
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "ownercmd",
				Other: "This bot is run by {{.Numbers}}.",
			}, map[string]any{"Numbers": strings.Join(ctx.Config.OwnerNumbers, ", ")}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "help",
		Aliases:  []string{"menu", "commands"},
		Category: categoryGeneral,
		MaxArgs:  1,
		Cooldown: 5,
		Run: func(ctx *command.Context) error {
			if len(ctx.Args) == 1 {
				return helpFor(ctx, reg, strings.ToLower(ctx.Args[0]))
			}

			var b strings.Builder
			fmt.Fprintf(&b, "*%s*\n", ctx.Config.BotName)
			for _, cat := range reg.Categories() {
				cmds := reg.ListByCategory(cat)
				if len(cmds) == 0 {
					continue
				}
				fmt.Fprintf(&b, "\n*%s*\n", cat)
				for _, cmd := range cmds {
					fmt.Fprintf(&b, "  %s%s\n", ctx.Prefix, cmd.Name)
				}
			}
			ctx.Reply(b.String())
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "profile",
		Aliases:  []string{"me"},
		Category: categoryGeneral,
		Cooldown: 10,
		Run: func(ctx *command.Context) error {
			user, err := ctx.DB.GetUserInfo(ctx.Sender.User)
			if err != nil {
				// The store being down degrades to a neutral answer.
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "profileunavailable",
					Other: "Profile data is unavailable right now.",
				}, nil))
				return nil
			}
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "profilecmd",
				Other: "*{{.Name}}*\nCommands used: {{.Count}}",
			}, map[string]any{"Name": user.Name, "Count": user.CommandCount}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "sticker",
		Aliases:  []string{"s"},
		Category: categoryGeneral,
		Cooldown: 10,
		Run: func(ctx *command.Context) error {
			imgMsg := tmsg.GetImageMessage(ctx.Msg)
			if imgMsg == nil {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "stickernoimage",
					Other: "Send or quote an image to turn it into a sticker.",
				}, nil))
				return nil
			}
			data, err := ctx.Client.Download(ctx.Context(), imgMsg.GetImageMessage())
			if err != nil {
				return fmt.Errorf("Error downloading image: %w", err)
			}
			webp, err := media.ImageToWebp(data)
			if err != nil {
				return err
			}
			title := ctx.Config.StickerTitle
			if user, err := ctx.DB.GetUserInfo(ctx.Sender.User); err == nil && user.StickerTitle != "" {
				title = user.StickerTitle
			}
			webp, err = media.AddExifToWebp(webp, title, ctx.Config.StickerAuthor)
			if err != nil {
				return err
			}
			ctx.SendStickerMessage(ctx.Chat, webp, &command.MessageOptions{
				QuotedMessage: ctx.Msg,
			})
			return nil
		},
	})
}

func helpFor(ctx *command.Context, reg *command.Registry, token string) error {
	cmd, ok := reg.Resolve(token)
	if ok && !cmd.Hidden {
		var b strings.Builder
		fmt.Fprintf(&b, "*%s%s*\n", ctx.Prefix, cmd.Name)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(cmd.Aliases, ", "))
		}
		fmt.Fprintf(&b, "Category: %s\n", cmd.Category)
		if cmd.Cooldown > 0 {
			fmt.Fprintf(&b, "Cooldown: %ds\n", cmd.Cooldown)
		}
		ctx.Reply(b.String())
		return nil
	}

	if suggestion := closestToken(reg, token); suggestion != "" {
		ctx.Reply(ctx.Localize(&i18n.Message{
			ID:    "helpdidyoumean",
			Other: "Unknown command {{.Token}}. Did you mean {{.Suggestion}}?",
		}, map[string]any{"Token": token, "Suggestion": ctx.Prefix + suggestion}))
		return nil
	}
	ctx.Reply(ctx.Localize(&i18n.Message{
		ID:    "helpunknown",
		Other: "Unknown command {{.Token}}.",
	}, map[string]any{"Token": token}))
	return nil
}

func closestToken(reg *command.Registry, token string) string {
	best := ""
	bestScore := 0.6
	for _, candidate := range reg.Tokens() {
		if score := strsim.Compare(token, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}
