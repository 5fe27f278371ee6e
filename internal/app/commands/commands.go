// Package commands defines the bot's command catalog. Every command is a
// static descriptor registered at startup; state a command needs across
// invocations lives in a session store it owns, never in package globals.
package commands

import (
	"lynxbot/internal/command"
)

const (
	categoryGeneral = "general"
	categoryAdmin   = "admin"
	categoryOwner   = "owner"
	categoryFun     = "fun"
)

// RegisterAll installs the full catalog into reg. Called once from app
// wiring before the client connects.
func RegisterAll(reg *command.Registry) {
	registerGeneral(reg)
	registerAdmin(reg)
	registerOwner(reg)
	registerFun(reg)
}
