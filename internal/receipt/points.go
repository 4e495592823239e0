package receipt

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	oneDollar = decimal.NewFromInt(1)
	quarter   = decimal.RequireFromString("0.25")
	five      = decimal.NewFromInt(5)
)

// ComputePoints scores a receipt against the reward rules and returns the
// per-rule breakdown. It never fails: a sub-field that does not parse simply
// awards nothing for the rules that depend on it.
func ComputePoints(r Receipt) PointsBreakdown {
	b := PointsBreakdown{
		AlphaNumericPoints:   alphanumericCount(r.Retailer),
		ItemPoints:           int64(len(r.Items)/2) * 5,
		TrimmedLengthPoints:  descriptionPoints(r.Items),
		OddDayPoints:         oddDayPoints(r.PurchaseDate),
		TimeOfPurchasePoints: timeOfPurchasePoints(r.PurchaseTime),
	}

	// A zero total earns neither bonus, so both checks sit behind the
	// positivity guard.
	if total, err := decimal.NewFromString(r.Total); err == nil && total.IsPositive() {
		if total.Mod(oneDollar).IsZero() {
			b.RoundDollarPoints = 50
		}
		if total.Mod(quarter).IsZero() {
			b.MultipleOfTwentyFiveCentsPoints = 25
		}
	}

	b.TotalPoints = b.AlphaNumericPoints +
		b.RoundDollarPoints +
		b.MultipleOfTwentyFiveCentsPoints +
		b.ItemPoints +
		b.TrimmedLengthPoints +
		b.OddDayPoints +
		b.TimeOfPurchasePoints

	return b
}

// alphanumericCount counts ASCII letters and digits in the retailer name.
// Whitespace and punctuation earn nothing.
func alphanumericCount(retailer string) int64 {
	var n int64
	for _, c := range retailer {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			n++
		}
	}
	return n
}

// descriptionPoints awards ceil(price / 5) for every item whose trimmed
// description length is a positive multiple of three. An empty description
// trims to length zero and earns nothing.
func descriptionPoints(items []Item) int64 {
	var points int64
	for _, item := range items {
		length := utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))
		if length == 0 || length%3 != 0 {
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			continue
		}
		// price / 5 is price * 0.2, computed exactly
		points += price.Div(five).Ceil().IntPart()
	}
	return points
}

// oddDayPoints awards 6 points when the day of the month is odd
func oddDayPoints(purchaseDate string) int64 {
	date, err := time.Parse("2006-01-02", purchaseDate)
	if err != nil {
		return 0
	}
	if date.Day()%2 == 1 {
		return 6
	}
	return 0
}

// timeOfPurchasePoints awards 10 points for purchases in [14:00, 16:00)
func timeOfPurchasePoints(purchaseTime string) int64 {
	t, err := time.Parse("15:04", purchaseTime)
	if err != nil {
		return 0
	}
	if t.Hour() == 14 || t.Hour() == 15 {
		return 10
	}
	return 0
}
