package types

import (
	"time"
)

// User is a snapshot of one tracked person as reported by the
// personnel-tracking backend. The monitor only ever acts on the
// EmergencyAlarm flag, the rest is carried for presentation.
type User struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Rank        string `json:"rank,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Sex         string `json:"sex,omitempty"`
	Age         int    `json:"age,omitempty"`

	CurrentLocation    string `json:"currentLocation,omitempty"`
	AssignedLocation   string `json:"assignedLocation,omitempty"`
	AtAssignedLocation bool   `json:"atAssignedLocation"`

	EmergencyAlarm bool `json:"emergencyAlarm"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// NotAssigned is the sentinel the backend uses for users that have
// no assigned location.
const NotAssigned string = "Not Assigned"

func (u User) Name() string {
	return u.FirstName + " " + u.LastName
}

// Notification describes a detected change in the number of active
// emergency alarms.
type Notification struct {
	Delta      int       `json:"delta"`
	Count      int       `json:"count"`
	ObservedAt time.Time `json:"observedAt"`
}

type LocationStatus struct {
	AtLocation    int `json:"atLocation"`
	NotAtLocation int `json:"notAtLocation"`
	NotAssigned   int `json:"notAssigned"`
}

type DashboardStats struct {
	UserCount         int            `json:"userCount"`
	ActiveEmergencies int            `json:"activeEmergencies"`
	LocationStatus    LocationStatus `json:"locationStatus"`
}

const (
	JournalEntryRaised   string = "raised"
	JournalEntryResolved string = "resolved"
)

// JournalEntry is an audit record of an emergency alarm transition.
// The journal is write-behind and informational only, the in-memory
// roster is the single source of truth for the monitor.
type JournalEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userID"`
	UserName   string    `json:"userName"`
	Rank       string    `json:"rank,omitempty"`
	Location   string    `json:"location,omitempty"`
	Entry      string    `json:"entry"`
	ObservedAt time.Time `json:"observedAt"`
}
