package analytics

import (
	"sort"

	"wanderfare/internal/models"
)

// RankPopularItems groups the order lines by menu item, sums quantities
// and returns the items sorted descending by total quantity sold. The
// order among equal quantities is not specified.
func RankPopularItems(lines []models.OrderLine) []models.PopularItem {
	totals := make(map[int64]*models.PopularItem)
	var firstSeen []int64

	for _, line := range lines {
		entry, ok := totals[line.MenuItemID]
		if !ok {
			entry = &models.PopularItem{MenuItemName: line.MenuItemName}
			totals[line.MenuItemID] = entry
			firstSeen = append(firstSeen, line.MenuItemID)
		}
		entry.TotalQuantity += int64(line.Quantity)
	}

	ranked := make([]models.PopularItem, 0, len(totals))
	for _, id := range firstSeen {
		ranked = append(ranked, *totals[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalQuantity > ranked[j].TotalQuantity
	})

	return ranked
}
