package api

import (
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/monitor"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

type emergenciesResponse struct {
	Users []types.User  `json:"users"`
	State monitor.State `json:"state"`
}

type sidebarState struct {
	Open bool `json:"open"`
}

type audioState struct {
	Enabled bool `json:"enabled"`
}

type audioTestResult struct {
	Played  bool   `json:"played"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type journalResponse struct {
	Entries []types.JournalEntry `json:"entries"`
}
