package service

import (
	"math"
	"reflect"
	"testing"

	"github.com/stockportfoliotracker/backend/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func buy(ticker string, quantity int64, price float64) model.Transaction {
	return model.Transaction{Ticker: ticker, Quantity: quantity, PurchasePrice: price}
}

func sell(ticker string, quantity int64, price float64) model.Transaction {
	return model.Transaction{Ticker: ticker, Quantity: -quantity, PurchasePrice: price}
}

func TestComputePosition(t *testing.T) {
	t.Run("all-buy history realizes nothing", func(t *testing.T) {
		position := ComputePosition([]model.Transaction{
			buy("AAPL", 10, 10),
			buy("AAPL", 5, 20),
			buy("AAPL", 3, 30),
		})

		if position.RealizedPL != 0 {
			t.Errorf("Expected realized P/L 0, got %f", position.RealizedPL)
		}
		if position.OpenQuantity != 18 {
			t.Errorf("Expected open quantity 18, got %d", position.OpenQuantity)
		}
		if !almostEqual(position.OpenCostBasis, 10*10+5*20+3*30) {
			t.Errorf("Expected cost basis 290, got %f", position.OpenCostBasis)
		}
	})

	t.Run("average cost sell", func(t *testing.T) {
		// buy 10 @ 10 (cost 100), buy 10 @ 20 (cost 300, avg 15), sell 5 @ 25
		position := ComputePosition([]model.Transaction{
			buy("AAPL", 10, 10),
			buy("AAPL", 10, 20),
			sell("AAPL", 5, 25),
		})

		if !almostEqual(position.RealizedPL, 50) {
			t.Errorf("Expected realized P/L 50, got %f", position.RealizedPL)
		}
		if position.OpenQuantity != 15 {
			t.Errorf("Expected open quantity 15, got %d", position.OpenQuantity)
		}
		if !almostEqual(position.OpenCostBasis, 225) {
			t.Errorf("Expected cost basis 225, got %f", position.OpenCostBasis)
		}
	})

	t.Run("oversell is a no-op", func(t *testing.T) {
		position := ComputePosition([]model.Transaction{
			buy("AAPL", 10, 10),
			sell("AAPL", 15, 25),
		})

		if position.RealizedPL != 0 {
			t.Errorf("Expected realized P/L 0, got %f", position.RealizedPL)
		}
		if position.OpenQuantity != 10 {
			t.Errorf("Expected open quantity 10, got %d", position.OpenQuantity)
		}
		if !almostEqual(position.OpenCostBasis, 100) {
			t.Errorf("Expected cost basis 100, got %f", position.OpenCostBasis)
		}
	})

	t.Run("sell with no prior buys is a no-op", func(t *testing.T) {
		position := ComputePosition([]model.Transaction{
			sell("AAPL", 5, 25),
			sell("AAPL", 3, 30),
		})

		if position.RealizedPL != 0 {
			t.Errorf("Expected realized P/L 0, got %f", position.RealizedPL)
		}
		if position.OpenQuantity != 0 {
			t.Errorf("Expected open quantity 0, got %d", position.OpenQuantity)
		}
		if position.OpenCostBasis != 0 {
			t.Errorf("Expected cost basis 0, got %f", position.OpenCostBasis)
		}
	})

	t.Run("full sell closes the position", func(t *testing.T) {
		position := ComputePosition([]model.Transaction{
			buy("AAPL", 10, 10),
			sell("AAPL", 10, 12),
		})

		if !almostEqual(position.RealizedPL, 20) {
			t.Errorf("Expected realized P/L 20, got %f", position.RealizedPL)
		}
		if position.OpenQuantity != 0 {
			t.Errorf("Expected open quantity 0, got %d", position.OpenQuantity)
		}
		if !almostEqual(position.OpenCostBasis, 0) {
			t.Errorf("Expected cost basis 0, got %f", position.OpenCostBasis)
		}
		if position.UnrealizedPL != 0 {
			t.Errorf("Expected unrealized P/L 0 for a closed position, got %f", position.UnrealizedPL)
		}
	})

	t.Run("unrealized uses last price of last transaction", func(t *testing.T) {
		transactions := []model.Transaction{
			buy("AAPL", 10, 10),
			buy("AAPL", 10, 20),
		}
		transactions[0].LastPrice = 17 // stale
		transactions[1].LastPrice = 18

		position := ComputePosition(transactions)

		if !almostEqual(position.LastPrice, 18) {
			t.Errorf("Expected last price 18, got %f", position.LastPrice)
		}
		if !almostEqual(position.CurrentValue, 20*18) {
			t.Errorf("Expected current value 360, got %f", position.CurrentValue)
		}
		// avg cost 15, so 20 * (18 - 15)
		if !almostEqual(position.UnrealizedPL, 60) {
			t.Errorf("Expected unrealized P/L 60, got %f", position.UnrealizedPL)
		}
	})

	t.Run("pure function yields identical output on repeat", func(t *testing.T) {
		transactions := []model.Transaction{
			buy("AAPL", 10, 10),
			sell("AAPL", 4, 12),
			buy("AAPL", 6, 14),
		}

		first := ComputePosition(transactions)
		second := ComputePosition(transactions)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical results, got %+v and %+v", first, second)
		}
	})
}

func TestGroupByTicker(t *testing.T) {
	t.Run("grouping is case-insensitive", func(t *testing.T) {
		grouped := GroupByTicker([]model.Transaction{
			buy("aapl", 10, 10),
			buy("AAPL", 5, 20),
			buy("msft", 2, 50),
		})

		if len(grouped) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(grouped))
		}
		if len(grouped["AAPL"]) != 2 {
			t.Errorf("Expected 2 AAPL transactions, got %d", len(grouped["AAPL"]))
		}
		if len(grouped["MSFT"]) != 1 {
			t.Errorf("Expected 1 MSFT transaction, got %d", len(grouped["MSFT"]))
		}
	})

	t.Run("ledger order is preserved within a group", func(t *testing.T) {
		grouped := GroupByTicker([]model.Transaction{
			{ID: 1, Ticker: "aapl", Quantity: 10, PurchasePrice: 10},
			{ID: 2, Ticker: "MSFT", Quantity: 1, PurchasePrice: 1},
			{ID: 3, Ticker: "AAPL", Quantity: -5, PurchasePrice: 12},
		})

		group := grouped["AAPL"]
		if len(group) != 2 || group[0].ID != 1 || group[1].ID != 3 {
			t.Errorf("Expected AAPL group [1 3], got %+v", group)
		}
	})
}

func TestAggregate(t *testing.T) {
	t.Run("matches the worked example", func(t *testing.T) {
		// (X, +10, 10, last 0) then (X, -3, 12, last 15)
		transactions := []model.Transaction{
			{ID: 1, Ticker: "X", Quantity: 10, PurchasePrice: 10, LastPrice: 0},
			{ID: 2, Ticker: "X", Quantity: -3, PurchasePrice: 12, LastPrice: 15},
		}

		summary := Aggregate(transactions)

		if !almostEqual(summary.TotalSpent, 100) {
			t.Errorf("Expected total spent 100, got %f", summary.TotalSpent)
		}
		if !almostEqual(summary.TotalSells, 36) {
			t.Errorf("Expected total sells 36, got %f", summary.TotalSells)
		}
		if !almostEqual(summary.RealizedPL, 6) {
			t.Errorf("Expected realized P/L 6, got %f", summary.RealizedPL)
		}
		if !almostEqual(summary.CurrentValue, 105) {
			t.Errorf("Expected current value 105, got %f", summary.CurrentValue)
		}
		if !almostEqual(summary.UnrealizedPL, 35) {
			t.Errorf("Expected unrealized P/L 35, got %f", summary.UnrealizedPL)
		}
	})

	t.Run("mixed-case tickers form one position", func(t *testing.T) {
		summary := Aggregate([]model.Transaction{
			buy("aapl", 10, 10),
			buy("AAPL", 10, 20),
		})

		if len(summary.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(summary.Positions))
		}
		if summary.Positions[0].Ticker != "AAPL" {
			t.Errorf("Expected ticker AAPL, got %s", summary.Positions[0].Ticker)
		}
		if summary.Positions[0].OpenQuantity != 20 {
			t.Errorf("Expected open quantity 20, got %d", summary.Positions[0].OpenQuantity)
		}
	})

	t.Run("positions are sorted by ticker", func(t *testing.T) {
		summary := Aggregate([]model.Transaction{
			buy("MSFT", 1, 1),
			buy("AAPL", 1, 1),
			buy("GOOG", 1, 1),
		})

		if len(summary.Positions) != 3 {
			t.Fatalf("Expected 3 positions, got %d", len(summary.Positions))
		}
		order := []string{summary.Positions[0].Ticker, summary.Positions[1].Ticker, summary.Positions[2].Ticker}
		expected := []string{"AAPL", "GOOG", "MSFT"}
		if !reflect.DeepEqual(order, expected) {
			t.Errorf("Expected order %v, got %v", expected, order)
		}
	})

	t.Run("empty ledger yields zero summary", func(t *testing.T) {
		summary := Aggregate(nil)

		if summary.TotalSpent != 0 || summary.TotalSells != 0 || summary.CurrentValue != 0 ||
			summary.RealizedPL != 0 || summary.UnrealizedPL != 0 {
			t.Errorf("Expected zero summary, got %+v", summary)
		}
		if summary.Positions == nil || len(summary.Positions) != 0 {
			t.Errorf("Expected empty positions slice, got %+v", summary.Positions)
		}
	})
}

func TestNetQuantity(t *testing.T) {
	transactions := []model.Transaction{
		buy("AAPL", 10, 10),
		sell("AAPL", 3, 12),
		buy("AAPL", 2, 14),
	}

	if net := NetQuantity(transactions); net != 9 {
		t.Errorf("Expected net quantity 9, got %d", net)
	}

	if net := NetQuantity(nil); net != 0 {
		t.Errorf("Expected net quantity 0 for empty input, got %d", net)
	}
}
