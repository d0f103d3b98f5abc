// Package presence classifies last-seen timestamps into discrete activity
// buckets shown next to candidates in discovery.
package presence

import (
	"fmt"
	"time"
)

// Status is a discrete presence bucket.
type Status string

const (
	StatusOnline         Status = "online"
	StatusRecentlyActive Status = "recently_active"
	StatusActiveToday    Status = "active_today"
	StatusActiveThisWeek Status = "active_this_week"
	StatusOffline        Status = "offline"
)

// ActiveStatus is the per-candidate presence payload. It is a pure function
// of the current time and the user's last-seen timestamp, so it must be
// recomputed per request and never cached beyond request scope.
type ActiveStatus struct {
	Status      Status `json:"status"`
	IsActive    bool   `json:"is_active"`
	DisplayText string `json:"display_text"`
	MinutesAgo  *int   `json:"minutes_ago,omitempty"`
	HoursAgo    *int   `json:"hours_ago,omitempty"`
}

// Classify maps a last-seen timestamp to a presence bucket relative to now.
// Thresholds are exclusive upper bounds evaluated in order:
// <=5m online, <=30m recently_active, <24h active_today, <=168h
// active_this_week, otherwise offline. A nil timestamp is offline.
func Classify(lastActiveAt *time.Time, now time.Time) ActiveStatus {
	if lastActiveAt == nil {
		return ActiveStatus{
			Status:      StatusOffline,
			IsActive:    false,
			DisplayText: "Offline",
		}
	}

	elapsed := now.Sub(*lastActiveAt)
	minutes := int(elapsed.Minutes())
	hours := int(elapsed.Hours())

	switch {
	case elapsed <= 5*time.Minute:
		return ActiveStatus{
			Status:      StatusOnline,
			IsActive:    true,
			DisplayText: "Online now",
			MinutesAgo:  &minutes,
		}
	case elapsed <= 30*time.Minute:
		return ActiveStatus{
			Status:      StatusRecentlyActive,
			IsActive:    true,
			DisplayText: fmt.Sprintf("Active %dm ago", minutes),
			MinutesAgo:  &minutes,
		}
	case elapsed < 24*time.Hour:
		return ActiveStatus{
			Status:      StatusActiveToday,
			IsActive:    true,
			DisplayText: fmt.Sprintf("Active %dh ago", hours),
			HoursAgo:    &hours,
		}
	case elapsed <= 7*24*time.Hour:
		return ActiveStatus{
			Status:      StatusActiveThisWeek,
			IsActive:    true,
			DisplayText: "Active this week",
			HoursAgo:    &hours,
		}
	default:
		return ActiveStatus{
			Status:      StatusOffline,
			IsActive:    false,
			DisplayText: "Offline",
		}
	}
}
