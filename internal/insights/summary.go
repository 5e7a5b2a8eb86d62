package insights

import (
	"math"
	"strings"

	"github.com/dtroode/creatorhub/internal/model"
)

const affiliateRole = "affiliate"

// Summary holds the overview counters of the dashboard.
type Summary struct {
	// Income is the sum of content prices.
	Income float64
	// MediaPushes is the number of content items.
	MediaPushes int
	// TipsEstimate is round(sum(performance * 1.5)).
	TipsEstimate int
	// PrivateMedia counts images with a positive price.
	PrivateMedia int
	// Lives counts users with performance above 70.
	Lives int
	// Affiliates counts users whose role is "affiliate", case-insensitively.
	Affiliates int
}

func Summarize(users []model.User, content []model.Content, images []model.Image) Summary {
	s := Summary{MediaPushes: len(content)}

	for _, c := range content {
		s.Income += c.Price.Float64()
	}

	var tips float64
	for _, u := range users {
		tips += u.Performance * 1.5
		if u.Performance > 70 {
			s.Lives++
		}
		if strings.EqualFold(strings.TrimSpace(u.Role), affiliateRole) {
			s.Affiliates++
		}
	}
	s.TipsEstimate = int(math.Round(tips))

	for _, img := range images {
		if img.Price > 0 {
			s.PrivateMedia++
		}
	}

	return s
}
