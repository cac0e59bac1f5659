// README: Pricing service computes distance and fare splits.
package pricing

import (
	"errors"
	"math"

	"swiftlogix/internal/types"
)

var ErrInvalidInput = errors.New("invalid pricing input")

type Service struct {
	params Params
}

func NewService(params Params) *Service {
	return &Service{params: params}
}

// Quote prices a trip between two coordinates carrying the given weight.
func (s *Service) Quote(pickup, drop types.Point, weightKg float64) (FareQuote, error) {
	if !pickup.Valid() || !drop.Valid() {
		return FareQuote{}, ErrInvalidInput
	}
	return s.QuoteDistance(DistanceKm(pickup, drop), weightKg)
}

// QuoteDistance prices a trip of a known distance. Distance zero is a valid
// trip (pickup equals drop); non-positive weight is not.
func (s *Service) QuoteDistance(distanceKm, weightKg float64) (FareQuote, error) {
	if distanceKm < 0 || weightKg <= 0 {
		return FareQuote{}, ErrInvalidInput
	}
	total := s.params.BaseFare + distanceKm*s.params.PerKm + weightKg*s.params.PerKg
	commission := round2(total * s.params.CommissionRate)
	driverShare := round2(total - commission)
	return FareQuote{
		DistanceKm:  round2(distanceKm),
		Total:       round2(total),
		DriverShare: driverShare,
		Commission:  commission,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
