// Package shipping aggregates shipped units into a manifest and prices it.
package shipping

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Unit is one physical item to ship.
type Unit struct {
	Name        string
	WeightGrams float64
}

// Parcel groups the units of one product.
type Parcel struct {
	Name        string
	Count       int
	WeightGrams float64
}

type Manifest struct {
	Parcels    []Parcel
	TotalGrams float64
}

// Aggregate groups units by name. Parcels are sorted by name.
func Aggregate(units []Unit) Manifest {
	var (
		manifest Manifest
		byName   = make(map[string]int)
	)

	for _, u := range units {
		i, ok := byName[u.Name]
		if !ok {
			i = len(manifest.Parcels)
			byName[u.Name] = i
			manifest.Parcels = append(manifest.Parcels, Parcel{Name: u.Name})
		}
		manifest.Parcels[i].Count++
		manifest.Parcels[i].WeightGrams += u.WeightGrams
		manifest.TotalGrams += u.WeightGrams
	}

	sort.Slice(manifest.Parcels, func(i, j int) bool {
		return manifest.Parcels[i].Name < manifest.Parcels[j].Name
	})

	return manifest
}

func (m Manifest) IsEmpty() bool {
	return len(m.Parcels) == 0
}

func (m Manifest) TotalKilograms() float64 {
	return m.TotalGrams / 1000
}

type FeePolicy struct {
	RatePerGram decimal.Decimal
	MinimumFee  decimal.Decimal
	// WaiveWithoutShipment charges nothing when there is no weight to ship.
	WaiveWithoutShipment bool
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		RatePerGram: decimal.RequireFromString("0.05"),
		MinimumFee:  decimal.RequireFromString("10.00"),
	}
}

// Fee returns max(totalGrams*rate, minimum) rounded to cents.
func (p FeePolicy) Fee(totalGrams float64) decimal.Decimal {
	if totalGrams <= 0 && p.WaiveWithoutShipment {
		return decimal.Zero
	}

	fee := decimal.NewFromFloat(totalGrams).Mul(p.RatePerGram)
	return decimal.Max(fee, p.MinimumFee).Round(2)
}
