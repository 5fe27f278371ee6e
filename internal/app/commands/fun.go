package commands

import (
	"math/rand"
	"strconv"
	"time"

	"lynxbot/internal/command"
	"lynxbot/internal/session"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type guessGame struct {
	Secret   int
	Attempts int
}

const guessMaxAttempts = 5

func registerFun(reg *command.Registry) {
	// Game state is scoped per caller per chat and owned here, not by some
	// package-level map.
	games := session.New[guessGame](10 * time.Minute)

	reg.MustRegister(&command.Command{
		Name:     "guess",
		Aliases:  []string{"g"},
		Category: categoryFun,
		MaxArgs:  1,
		Cooldown: 2,
		Run: func(ctx *command.Context) error {
			key := session.Key(ctx.Sender.User, ctx.Chat.User)

			if len(ctx.Args) == 0 {
				games.Put(key, guessGame{Secret: rand.Intn(100) + 1})
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guessstart",
					Other: "I picked a number from 1 to 100. {{.Command}} <n> to guess, {{.Max}} attempts.",
				}, map[string]any{"Command": ctx.Prefix + "guess", "Max": guessMaxAttempts}))
				return nil
			}

			n, err := strconv.Atoi(ctx.Args[0])
			if err != nil || n < 1 || n > 100 {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guessnotanumber",
					Other: "Guesses are numbers from 1 to 100.",
				}, nil))
				return nil
			}

			game, ok := games.Get(key)
			if !ok {
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guessnogame",
					Other: "No game running. Start one with {{.Command}}.",
				}, map[string]any{"Command": ctx.Prefix + "guess"}))
				return nil
			}

			game.Attempts++
			switch {
			case n == game.Secret:
				games.Delete(key)
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guesswin",
					Other: "Correct! {{.Secret}} in {{.Attempts}} attempts.",
				}, map[string]any{"Secret": game.Secret, "Attempts": game.Attempts}))
			case game.Attempts >= guessMaxAttempts:
				games.Delete(key)
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guesslose",
					Other: "Out of attempts. It was {{.Secret}}.",
				}, map[string]any{"Secret": game.Secret}))
			case n < game.Secret:
				games.Put(key, game)
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guesshigher",
					Other: "Higher. {{.Left}} attempts left.",
				}, map[string]any{"Left": guessMaxAttempts - game.Attempts}))
			default:
				games.Put(key, game)
				ctx.Reply(ctx.Localize(&i18n.Message{
					ID:    "guesslower",
					Other: "Lower. {{.Left}} attempts left.",
				}, map[string]any{"Left": guessMaxAttempts - game.Attempts}))
			}
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "roll",
		Aliases:  []string{"dice"},
		Category: categoryFun,
		MaxArgs:  1,
		Cooldown: 2,
		Run: func(ctx *command.Context) error {
			sides := 6
			if len(ctx.Args) == 1 {
				if n, err := strconv.Atoi(ctx.Args[0]); err == nil && n >= 2 && n <= 1000 {
					sides = n
				}
			}
			ctx.Reply(ctx.Localize(&i18n.Message{
				ID:    "rollcmd",
				Other: "🎲 {{.Roll}} (d{{.Sides}})",
			}, map[string]any{"Roll": rand.Intn(sides) + 1, "Sides": sides}))
			return nil
		},
	})

	reg.MustRegister(&command.Command{
		Name:     "8ball",
		Aliases:  []string{"eightball"},
		Category: categoryFun,
		MinArgs:  1,
		Cooldown: 3,
		Run: func(ctx *command.Context) error {
			answers := []string{
				"It is certain.",
				"Without a doubt.",
				"Most likely.",
				"Ask again later.",
				"Better not tell you now.",
				"Don't count on it.",
				"My sources say no.",
				"Very doubtful.",
			}
			ctx.Reply("🎱 " + answers[rand.Intn(len(answers))])
			return nil
		},
	})
}
