package linen

import "github.com/mamadbah2/residence/internal/domain/models"

// MaxKitsPossible computes how many of each kit the raw stock can still produce.
// Negative counts are treated as zero.
func MaxKitsPossible(stock models.StockItem) models.MaxKits {
	return models.MaxKits{
		Single: min(nonNegative(stock.SingleSheets), nonNegative(stock.SingleCovers), nonNegative(stock.Pillowcases)),
		Double: min(nonNegative(stock.DoubleSheets), nonNegative(stock.DoubleCovers), nonNegative(stock.Pillowcases)/2),
		Towel:  min(nonNegative(stock.LargeTowels), nonNegative(stock.SmallTowels)),
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
