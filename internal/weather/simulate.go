package weather

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"agrisense/pkg/geometry"
)

// rainfallPerChance converts a simulated rain chance (0-100) into a daily
// rainfall estimate in millimetres.
const rainfallPerChance = 0.35

// Simulator produces plausible conditions without any network access. The
// output depends only on the calendar day, the hour and the location rounded
// to two decimals, so repeated calls on the same day agree.
type Simulator struct {
	Now func() time.Time
}

// NewSimulator returns a simulator on the wall clock.
func NewSimulator() *Simulator {
	return &Simulator{Now: time.Now}
}

type season struct {
	baseTemp   float64
	conditions []string
}

func seasonFor(month time.Month) season {
	switch month {
	case time.March, time.April, time.May:
		return season{32, []string{"Sunny", "Sunny", "Partly Cloudy", "Hot"}}
	case time.June, time.July, time.August, time.September:
		return season{28, []string{"Rainy", "Cloudy", "Heavy Rain", "Drizzle"}}
	case time.October, time.November:
		return season{25, []string{"Clear", "Partly Cloudy", "Sunny"}}
	default:
		return season{18, []string{"Clear", "Foggy", "Sunny", "Cold"}}
	}
}

// Fetch implements Provider. It never fails unless ctx is already done.
func (s *Simulator) Fetch(ctx context.Context, loc geometry.LatLon) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	seed := fmt.Sprintf("%s-%.2f-%.2f", now.Format("2006-01-02"), loc.Lat, loc.Lon)
	sum := sha256.Sum256([]byte(seed))
	rng := rand.New(rand.NewPCG(binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])))

	between := func(lo, hi int) int { return lo + rng.IntN(hi-lo+1) }

	sea := seasonFor(now.Month())
	offset := -math.Abs(float64(now.Hour())-14) / 2
	temp := sea.baseTemp + offset + float64(between(-2, 3))
	condition := sea.conditions[rng.IntN(len(sea.conditions))]

	var humidity, wind int
	switch {
	case strings.Contains(condition, "Rain"), strings.Contains(condition, "Drizzle"):
		humidity = between(80, 95)
		wind = between(10, 25)
	case strings.Contains(condition, "Sunny"), strings.Contains(condition, "Hot"):
		humidity = between(20, 50)
		wind = between(5, 15)
	default:
		humidity = between(50, 75)
		wind = between(5, 12)
	}

	var rainChance int
	switch {
	case strings.Contains(condition, "Rain"):
		rainChance = between(70, 100)
	case strings.Contains(condition, "Cloudy"):
		rainChance = between(30, 60)
	default:
		rainChance = between(0, 20)
	}

	return Snapshot{
		TemperatureC: temp,
		Humidity:     float64(humidity),
		RainfallMM:   float64(rainChance) * rainfallPerChance,
		Condition:    condition,
		WindSpeed:    float64(wind),
		Source:       SourceSimulation,
		FetchedAt:    now.UTC(),
	}, nil
}
