package insights

import (
	"github.com/dtroode/creatorhub/internal/model"
)

// Tier groups triage entries.
type Tier string

const (
	TierVIP    Tier = "VIP"
	TierUrgent Tier = "Urgent"
	TierNormal Tier = "Normal"
)

const (
	vipSpendThreshold      = 100
	urgentPerformanceBelow = 60

	maxVIP    = 2
	maxUrgent = 2
	maxNormal = 3
)

// TriageMessage is an entry of the messaging inbox preview.
type TriageMessage struct {
	ID       string
	From     string
	Tier     Tier
	Priority Priority
	Subject  string
	Unread   bool
}

// TriageCounts summarises a triage list.
type TriageCounts struct {
	Unread int
	VIP    int
	Urgent int
}

// Triage lists up to 2 VIP fans (spent more than 100), up to 2 urgent users
// (performance below 60) and up to 3 other fans, in that order.
func Triage(users []model.User, fans []model.Fan) []TriageMessage {
	out := make([]TriageMessage, 0, maxVIP+maxUrgent+maxNormal)

	vip := 0
	for _, f := range fans {
		if vip == maxVIP {
			break
		}
		if f.TotalSpent > vipSpendThreshold {
			out = append(out, TriageMessage{
				ID:       "fan_" + f.ID.String(),
				From:     nameOr(f.Name, "VIP fan"),
				Tier:     TierVIP,
				Priority: PriorityHigh,
				Subject:  "Question about premium access",
				Unread:   true,
			})
			vip++
		}
	}

	urgent := 0
	for _, u := range users {
		if urgent == maxUrgent {
			break
		}
		if u.Performance < urgentPerformanceBelow {
			out = append(out, TriageMessage{
				ID:       "user_" + u.ID.String(),
				From:     nameOr(u.DisplayName(), "Employee"),
				Tier:     TierUrgent,
				Priority: PriorityUrgent,
				Subject:  "Needs assistance",
				Unread:   true,
			})
			urgent++
		}
	}

	normal := 0
	for _, f := range fans {
		if normal == maxNormal {
			break
		}
		if f.TotalSpent <= vipSpendThreshold {
			out = append(out, TriageMessage{
				ID:       "fan_" + f.ID.String(),
				From:     nameOr(f.Name, "Fan"),
				Tier:     TierNormal,
				Priority: PriorityNormal,
				Subject:  "General question",
			})
			normal++
		}
	}

	return out
}

// CountTriage counts unread, VIP and urgent entries.
func CountTriage(msgs []TriageMessage) TriageCounts {
	var c TriageCounts
	for _, m := range msgs {
		if m.Unread {
			c.Unread++
		}
		switch m.Tier {
		case TierVIP:
			c.VIP++
		case TierUrgent:
			c.Urgent++
		}
	}
	return c
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
