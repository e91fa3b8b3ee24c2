package recommend

import (
	"sort"

	"github.com/muzaproject/muza-bot/internal/models"
)

// DefaultMaxResults bounds the size of a ranked result.
const DefaultMaxResults = 10

// Rank filters candidates down to those sharing at least one interest with
// the user and orders them by match count descending, then by name
// ascending. The sort is stable, so residual ties keep input order. The
// result never exceeds limit.
func Rank(candidates []models.Museum, tags map[int64][]string, userInterests []string, limit int) []models.RankedMuseum {
	selected := make(map[string]struct{}, len(userInterests))
	for _, label := range userInterests {
		selected[label] = struct{}{}
	}

	var ranked []models.RankedMuseum
	for _, m := range candidates {
		var matched []string
		for _, label := range tags[m.ID] {
			if _, ok := selected[label]; ok {
				matched = append(matched, label)
			}
		}
		if len(matched) == 0 {
			continue
		}
		ranked = append(ranked, models.RankedMuseum{
			Museum:       m,
			MatchCount:   len(matched),
			MatchedNames: matched,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchCount != ranked[j].MatchCount {
			return ranked[i].MatchCount > ranked[j].MatchCount
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
