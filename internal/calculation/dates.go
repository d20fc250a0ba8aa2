package calculation

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// CalculateDateFields derives the reporting month and quarter from a sale
// date. An empty or unparseable date yields ("", 0).
func CalculateDateFields(saleDate string) (monthOfSale string, quarterOfSale int) {
	t, ok := parseDate(saleDate)
	if !ok {
		return "", 0
	}

	month := int(t.Month())
	return t.Month().String(), (month + 2) / 3
}

// CalculateDaysInStock returns the number of days between purchase and sale,
// rounded up. Either date missing yields 0.
//
// The difference is taken as an absolute value, so a purchase date recorded
// after the sale date still produces a positive count. That masks bad data
// rather than surfacing it, but it is the behavior of record.
func CalculateDaysInStock(saleDate, purchaseDate string) int {
	sold, ok := parseDate(saleDate)
	if !ok {
		return 0
	}
	bought, ok := parseDate(purchaseDate)
	if !ok {
		return 0
	}

	days := math.Abs(sold.Sub(bought).Hours() / 24)
	return int(math.Ceil(days))
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
