package fx

// Conversion is the server's answer to a convert request.
type Conversion struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
	Date   string  `json:"date"`
}

// Sample is one point of a historical series.
type Sample struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// Series is the rate history of a pair over a period, oldest first.
type Series struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Period Period   `json:"period"`
	Data   []Sample `json:"data"`
}

// Pair is a from/to currency selection. The zero value means "no pair".
type Pair struct {
	From string
	To   string
}

// IsSet reports whether both sides are filled in.
func (p Pair) IsSet() bool {
	return p.From != "" && p.To != ""
}

// Currency is an entry of the currency catalog.
type Currency struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
