package ophase

import (
	"errors"
	"fmt"
)

var (
	ErrNotInGuild      = errors.New("this command can only be used in a server")
	ErrNotConfigured   = errors.New("o-phase feature is not configured")
	ErrRoleNotFound    = errors.New("no role with the o-phase role name found")
	ErrChannelNotFound = errors.New("o-phase channel not found")
	ErrWrongPassword   = errors.New("wrong group password")
	ErrPlatform        = errors.New("platform communication failure")
	ErrNotInitialized  = errors.New("invite use counter is not initialized")
	ErrInviteNotFound  = errors.New("tracked invite not found")
)

func platformError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPlatform, op, err)
}

func roleNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrRoleNotFound, name)
}

func channelNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrChannelNotFound, name)
}
