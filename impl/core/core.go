package core

import (
	"fmt"
	"log/slog"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

type StatusService interface {
	Status() entity.Status
}

type GrantStore interface {
	GetGrants(limit int) ([]*entity.GrantRecord, error)
}

type AuthService interface {
	CheckToken(token string) error
}

// Core is what the HTTP handlers see of the application.
type Core struct {
	status StatusService
	grants GrantStore
	auth   AuthService
	log    *slog.Logger
}

func New(status StatusService, log *slog.Logger) *Core {
	if status == nil {
		panic("status service is nil")
	}
	return &Core{
		status: status,
		log:    log.With(sl.Module("core")),
	}
}

func (c *Core) SetGrantStore(grants GrantStore) {
	c.grants = grants
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) AuthenticateByToken(token string) error {
	if c.auth == nil {
		return fmt.Errorf("auth service not connected")
	}
	return c.auth.CheckToken(token)
}

func (c *Core) Status() entity.Status {
	return c.status.Status()
}

func (c *Core) Grants(limit int) ([]*entity.GrantRecord, error) {
	if c.grants == nil {
		return nil, fmt.Errorf("grant log not connected")
	}
	return c.grants.GetGrants(limit)
}
