package monitor

import (
	"encoding/json"
	"time"

	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

type EmergencyRaised struct {
	Delta     int          `json:"delta"`
	Count     int          `json:"count"`
	Users     []types.User `json:"users"`
	Timestamp time.Time    `json:"timestamp"`
}

func (e *EmergencyRaised) ContentType() string {
	return "application/json"
}
func (e *EmergencyRaised) TopicName() string {
	return "emergency.raised"
}
func (e *EmergencyRaised) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}

type EmergencyResolved struct {
	UserID    string    `json:"userID"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EmergencyResolved) ContentType() string {
	return "application/json"
}
func (e *EmergencyResolved) TopicName() string {
	return "emergency.resolved"
}
func (e *EmergencyResolved) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}
