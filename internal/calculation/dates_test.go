package calculation

import "testing"

func TestCalculateDateFields(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		month   string
		quarter int
	}{
		{"march is Q1", "2024-03-15", "March", 1},
		{"april is Q2", "2024-04-01", "April", 2},
		{"september is Q3", "2023-09-30", "September", 3},
		{"december is Q4", "2023-12-31", "December", 4},
		{"january is Q1", "2024-01-01", "January", 1},
		{"empty date", "", "", 0},
		{"unparseable date", "15/03/2024", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, quarter := CalculateDateFields(tt.date)
			if month != tt.month {
				t.Errorf("expected month %q, got %q", tt.month, month)
			}
			if quarter != tt.quarter {
				t.Errorf("expected quarter %d, got %d", tt.quarter, quarter)
			}
		})
	}
}

func TestCalculateDaysInStock(t *testing.T) {
	tests := []struct {
		name     string
		sale     string
		purchase string
		days     int
	}{
		{"normal stock period", "2024-03-15", "2024-01-01", 74},
		{"same day", "2024-03-15", "2024-03-15", 0},
		{"one day", "2024-01-02", "2024-01-01", 1},
		{"missing sale date", "", "2024-01-01", 0},
		{"missing purchase date", "2024-03-15", "", 0},
		{"both missing", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDaysInStock(tt.sale, tt.purchase); got != tt.days {
				t.Errorf("expected %d days, got %d", tt.days, got)
			}
		})
	}
}

// Purchase recorded after the sale still counts as a positive duration because
// the difference is taken as an absolute value. Behavior of record: the data
// inconsistency is masked, not surfaced.
func TestCalculateDaysInStockPurchaseAfterSale(t *testing.T) {
	if got := CalculateDaysInStock("2024-01-01", "2024-03-15"); got != 74 {
		t.Errorf("expected 74 days from absolute difference, got %d", got)
	}
}
