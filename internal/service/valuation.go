package service

import (
	"sort"
	"strings"

	"github.com/stockportfoliotracker/backend/internal/model"
)

// ComputePosition folds one ticker's transactions, in ledger order, into a
// realized P/L figure and the remaining open position using the
// weighted-average-cost method.
//
// Buys add their quantity to the open share count and their full cost to the
// cost basis. Sells realize soldShares * (salePrice - averageCost) and
// remove the sold shares from the basis at average cost. A sell of more
// shares than are currently open is a no-op: it realizes nothing and leaves
// the share count and cost basis untouched, so a data-entry mistake can
// never drive a position negative or corrupt the basis. Entry-time
// validation is expected to reject such sells up front (see
// TransactionService), but the fold does not depend on it.
//
// The oversell guard also makes division by a zero share count impossible:
// with no open shares, any sell routes to the no-op branch.
func ComputePosition(transactions []model.Transaction) model.Position {
	var position model.Position

	var totalShares int64
	var totalCost float64

	for _, tx := range transactions {
		if tx.Quantity > 0 {
			totalShares += tx.Quantity
			totalCost += float64(tx.Quantity) * tx.PurchasePrice
			continue
		}

		soldShares := -tx.Quantity
		if soldShares > totalShares {
			// Oversell: ignore entirely.
			continue
		}

		averageCost := totalCost / float64(totalShares)
		position.RealizedPL += float64(soldShares) * (tx.PurchasePrice - averageCost)
		totalShares -= soldShares
		totalCost -= float64(soldShares) * averageCost
	}

	position.OpenQuantity = totalShares
	position.OpenCostBasis = totalCost

	if len(transactions) > 0 {
		position.Ticker = strings.ToUpper(transactions[0].Ticker)
		// Stand-in for the current market price: the last refresh value
		// carried by the ticker's most recent transaction.
		position.LastPrice = transactions[len(transactions)-1].LastPrice
	}

	if position.OpenQuantity > 0 {
		averageCost := position.OpenCostBasis / float64(position.OpenQuantity)
		position.CurrentValue = float64(position.OpenQuantity) * position.LastPrice
		position.UnrealizedPL = float64(position.OpenQuantity) * (position.LastPrice - averageCost)
	}

	return position
}

// GroupByTicker groups transactions by uppercased ticker, preserving ledger
// order within each group. "aapl" and "AAPL" form a single position.
func GroupByTicker(transactions []model.Transaction) map[string][]model.Transaction {
	grouped := make(map[string][]model.Transaction)
	for _, tx := range transactions {
		key := strings.ToUpper(tx.Ticker)
		grouped[key] = append(grouped[key], tx)
	}
	return grouped
}

// Aggregate recomputes the portfolio summary from a full ledger snapshot.
//
// TotalSpent and TotalSells are gross figures over the raw transactions and
// are independent of cost-basis accounting; the remaining fields reduce the
// per-ticker positions. Positions are sorted by ticker for stable output.
func Aggregate(transactions []model.Transaction) model.PortfolioSummary {
	summary := model.PortfolioSummary{Positions: []model.Position{}}

	for _, tx := range transactions {
		if tx.Quantity > 0 {
			summary.TotalSpent += float64(tx.Quantity) * tx.PurchasePrice
		} else {
			summary.TotalSells += float64(-tx.Quantity) * tx.PurchasePrice
		}
	}

	for _, group := range GroupByTicker(transactions) {
		position := ComputePosition(group)
		summary.CurrentValue += position.CurrentValue
		summary.RealizedPL += position.RealizedPL
		summary.UnrealizedPL += position.UnrealizedPL
		summary.Positions = append(summary.Positions, position)
	}

	sort.Slice(summary.Positions, func(i, j int) bool {
		return summary.Positions[i].Ticker < summary.Positions[j].Ticker
	})

	return summary
}

// NetQuantity sums the signed quantities of a ticker's transactions. Used as
// the entry-time oversell guard for new and edited sells.
func NetQuantity(transactions []model.Transaction) int64 {
	var net int64
	for _, tx := range transactions {
		net += tx.Quantity
	}
	return net
}
