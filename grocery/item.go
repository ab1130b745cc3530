package grocery

// DefaultQuantity is used when neither a number nor a unit was spoken.
const DefaultQuantity = "1 unit"

// Item is one extracted grocery line.
type Item struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}
