// README: Fare parameters and the computed quote for one order.
package pricing

// Params are the tunable pricing constants. Defaults match the rate card;
// deployments override them through config.
type Params struct {
	BaseFare       float64
	PerKm          float64
	PerKg          float64
	CommissionRate float64
}

func DefaultParams() Params {
	return Params{
		BaseFare:       30,
		PerKm:          10,
		PerKg:          5,
		CommissionRate: 0.10,
	}
}

// FareQuote is the pricing breakdown for one order, fixed at creation.
// Total always equals DriverShare + Commission.
type FareQuote struct {
	DistanceKm  float64
	Total       float64
	DriverShare float64
	Commission  float64
}
