package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderfare/internal/models"
)

func line(id int64, name string, qty int) models.OrderLine {
	return models.OrderLine{MenuItemID: id, MenuItemName: name, Quantity: qty}
}

func TestRankPopularItems(t *testing.T) {
	lines := []models.OrderLine{
		line(1, "Margherita", 3),
		line(2, "Garlic Bread", 7),
		line(1, "Margherita", 2),
	}

	ranked := RankPopularItems(lines)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Garlic Bread", ranked[0].MenuItemName)
	assert.Equal(t, int64(7), ranked[0].TotalQuantity)
	assert.Equal(t, "Margherita", ranked[1].MenuItemName)
	assert.Equal(t, int64(5), ranked[1].TotalQuantity)
}

func TestRankPopularItemsEmpty(t *testing.T) {
	assert.Empty(t, RankPopularItems(nil))
}

func TestRankPopularItemsSingleItem(t *testing.T) {
	ranked := RankPopularItems([]models.OrderLine{line(5, "Tiramisu", 1)})
	require.Len(t, ranked, 1)
	assert.Equal(t, "Tiramisu", ranked[0].MenuItemName)
	assert.Equal(t, int64(1), ranked[0].TotalQuantity)
}

func TestRankPopularItemsGroupsByID(t *testing.T) {
	// the same name under two ids stays two entries
	lines := []models.OrderLine{
		line(1, "Special", 4),
		line(2, "Special", 1),
	}
	ranked := RankPopularItems(lines)
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(4), ranked[0].TotalQuantity)
	assert.Equal(t, int64(1), ranked[1].TotalQuantity)
}
