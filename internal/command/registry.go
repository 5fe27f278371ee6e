package command

import (
	"fmt"
	"strings"
)

// Command describes one invocable capability: metadata consulted by the
// dispatcher plus the handler that runs once every gate passes. Commands are
// registered once during startup and never mutated afterwards.
type Command struct {
	Name     string
	Aliases  []string
	Category string
	Hidden   bool

	GroupOnly        bool
	AdminOnly        bool
	BotAdminRequired bool
	OwnerOnly        bool

	MinArgs  int
	MaxArgs  int // 0 means unbounded
	Cooldown int // seconds, 0 means unthrottled

	Run func(ctx *Context) error
}

// Registry indexes commands by name and alias. Reads are lock-free because
// registration only happens before the client connects.
type Registry struct {
	byToken    map[string]*Command
	ordered    []*Command
	categories []string
}

func NewRegistry() *Registry {
	return &Registry{byToken: make(map[string]*Command)}
}

// Register adds a command, failing with DuplicateNameError if its name or
// any alias collides with a token already present. A failed registration
// leaves the registry untouched.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command has no name")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}
	tokens := make([]string, 0, len(cmd.Aliases)+1)
	tokens = append(tokens, strings.ToLower(cmd.Name))
	for _, a := range cmd.Aliases {
		tokens = append(tokens, strings.ToLower(a))
	}
	for i, t := range tokens {
		if _, ok := r.byToken[t]; ok {
			return &DuplicateNameError{Token: t}
		}
		for _, prev := range tokens[:i] {
			if prev == t {
				return &DuplicateNameError{Token: t}
			}
		}
	}
	for _, t := range tokens {
		r.byToken[t] = cmd
	}
	r.ordered = append(r.ordered, cmd)
	if cmd.Category != "" {
		found := false
		for _, c := range r.categories {
			if c == cmd.Category {
				found = true
				break
			}
		}
		if !found {
			r.categories = append(r.categories, cmd.Category)
		}
	}
	return nil
}

// MustRegister is Register for init-time definitions, where a duplicate is a
// programming error worth crashing on.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Resolve returns the command whose name or alias matches token,
// case-insensitively.
func (r *Registry) Resolve(token string) (*Command, bool) {
	cmd, ok := r.byToken[strings.ToLower(token)]
	return cmd, ok
}

// ListByCategory returns non-hidden commands of a category in registration
// order.
func (r *Registry) ListByCategory(category string) []*Command {
	var out []*Command
	for _, cmd := range r.ordered {
		if cmd.Category == category && !cmd.Hidden {
			out = append(out, cmd)
		}
	}
	return out
}

// Categories returns category names in first-registration order.
func (r *Registry) Categories() []string {
	return r.categories
}

// All returns every registered command in registration order.
func (r *Registry) All() []*Command {
	return r.ordered
}

// Tokens returns every registered name and alias, for fuzzy suggestions.
func (r *Registry) Tokens() []string {
	out := make([]string, 0, len(r.byToken))
	for t := range r.byToken {
		out = append(out, t)
	}
	return out
}
