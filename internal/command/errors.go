package command

import (
	"fmt"
	"time"
)

// Reason identifies why a dispatch was denied or failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonGroupOnly
	ReasonOwnerOnly
	ReasonAdminRequired
	ReasonBotNotAdmin
	ReasonMetadataUnavailable
	ReasonTooFewArgs
	ReasonTooManyArgs
	ReasonCooldownActive
	ReasonFloodLimited
	ReasonHandlerFailure
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonGroupOnly:
		return "GroupOnly"
	case ReasonOwnerOnly:
		return "OwnerOnly"
	case ReasonAdminRequired:
		return "AdminRequired"
	case ReasonBotNotAdmin:
		return "BotNotAdmin"
	case ReasonMetadataUnavailable:
		return "MetadataUnavailable"
	case ReasonTooFewArgs:
		return "TooFewArgs"
	case ReasonTooManyArgs:
		return "TooManyArgs"
	case ReasonCooldownActive:
		return "CooldownActive"
	case ReasonFloodLimited:
		return "FloodLimited"
	case ReasonHandlerFailure:
		return "HandlerFailure"
	case ReasonTimeout:
		return "Timeout"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Denial is the expected, non-exceptional outcome of a gate or throttle
// check. Remaining is set only for ReasonCooldownActive.
type Denial struct {
	Reason    Reason
	Remaining time.Duration
}

// DuplicateNameError reports a registration whose name or alias is already
// taken by another command.
type DuplicateNameError struct {
	Token string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command token %q already registered", e.Token)
}
