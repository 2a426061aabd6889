// Package transport defines request/response DTOs for the ranking module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// RankingEntry is one broker's position in the ranking.
type RankingEntry struct {
	Position        int        `json:"position"`
	AgentID         *uuid.UUID `json:"agentId,omitempty"`
	AgentName       string     `json:"agentName"`
	AvatarURL       *string    `json:"avatarUrl,omitempty"`
	TotalCents      int64      `json:"totalCents"`
	AgentShareCents int64      `json:"agentShareCents"`
	SalesCount      int        `json:"salesCount"`
}

// RankingResponse is a rendered broker ranking for a time window.
type RankingResponse struct {
	WindowFrom time.Time      `json:"windowFrom"`
	WindowTo   time.Time      `json:"windowTo"`
	Entries    []RankingEntry `json:"entries"`
}
