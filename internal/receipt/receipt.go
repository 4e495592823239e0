package receipt

// Receipt represents a submitted purchase receipt
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"` // YYYY-MM-DD
	PurchaseTime string `json:"purchaseTime"` // 24-hour HH:MM
	Total        string `json:"total"`        // Decimal amount as text
	Items        []Item `json:"items"`
}

// Item represents a single line item on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"` // Decimal amount as text
}

// PointsBreakdown holds the points awarded by each scoring rule plus their sum
type PointsBreakdown struct {
	AlphaNumericPoints              int64 `json:"alphaNumericPoints"`
	RoundDollarPoints               int64 `json:"roundDollarPoints"`
	MultipleOfTwentyFiveCentsPoints int64 `json:"multipleOfTwentyFiveCentsPoints"`
	ItemPoints                      int64 `json:"itemPoints"`
	TrimmedLengthPoints             int64 `json:"trimmedLengthPoints"`
	OddDayPoints                    int64 `json:"oddDayPoints"`
	TimeOfPurchasePoints            int64 `json:"timeOfPurchasePoints"`
	TotalPoints                     int64 `json:"totalPoints"`
}
