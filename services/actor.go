package services

import (
	"time"

	"qc-laptop/types"
)

// Actor adalah user yang menjalankan operasi, diambil dari token.
type Actor struct {
	UserID types.SnowflakeID
	Name   string
	Role   types.Role
	IP     string
}

func (a Actor) IsLeader() bool { return a.Role == types.RoleLeader }

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
