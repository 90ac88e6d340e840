package estimate

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
)

type Category string

const (
	Unknown     Category = "unknown"
	ContestPrep Category = "contest_prep"
	Athletic    Category = "athletic"
	Average     Category = "average"
	Overweight  Category = "overweight"
	Obese       Category = "obese"
)

var Categories = []Category{ContestPrep, Athletic, Average, Overweight, Obese}

type bands struct {
	contestPrepBelow float64
	athleticUpTo     float64
	averageUpTo      float64
	overweightUpTo   float64
}

var bandsBySex = map[measurement.Sex]bands{
	measurement.Male:   {contestPrepBelow: 8, athleticUpTo: 15, averageUpTo: 21, overweightUpTo: 26},
	measurement.Female: {contestPrepBelow: 14, athleticUpTo: 24, averageUpTo: 33, overweightUpTo: 39},
}

// Severity orders categories; Unknown is -1.
func (c Category) Severity() int {
	for i, v := range Categories {
		if v == c {
			return i
		}
	}
	return -1
}

func Categorize(averageBf *float64, sex *measurement.Sex) Category {
	if averageBf == nil || sex == nil {
		return Unknown
	}
	b, ok := bandsBySex[*sex]
	if !ok {
		return Unknown
	}

	bf := *averageBf
	switch {
	case bf < b.contestPrepBelow:
		return ContestPrep
	case bf <= b.athleticUpTo:
		return Athletic
	case bf <= b.averageUpTo:
		return Average
	case bf <= b.overweightUpTo:
		return Overweight
	default:
		return Obese
	}
}
