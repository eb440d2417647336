package forecast

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

// TideType distinguishes high and low water.
type TideType string

const (
	TideHigh TideType = "haute"
	TideLow  TideType = "basse"
)

// TideEvent is one estimated high or low water of the day.
type TideEvent struct {
	Type         TideType `json:"type"`
	Time         string   `json:"time"`
	Height       float64  `json:"height"`
	HoursFromNow float64  `json:"hours_from_now"`
	Status       string   `json:"status"`
	Next         bool     `json:"est_prochaine"`
	// Tomorrow is set on the next-high/next-low entries when today's
	// events have all passed and the value comes from the following day.
	Tomorrow bool `json:"tomorrow,omitempty"`

	clock float64
}

// Hour returns the clock hour of the event.
func (e TideEvent) Hour() int {
	return int(math.Floor(e.clock))
}

// TideTable is the tide estimate for one day.
type TideTable struct {
	NextHigh  TideEvent   `json:"next_high"`
	NextLow   TideEvent   `json:"next_low"`
	AllEvents []TideEvent `json:"all_events"`
}

// TideModel produces a tide table for the day containing now. Implementations
// must be safe for concurrent use.
type TideModel interface {
	Tides(now time.Time) TideTable
}

const (
	// TidePeriod is the semi-diurnal period in hours.
	TidePeriod = 12.42
	// tideBaseHigh is the clock hour of the first high water before drift.
	tideBaseHigh = 6.5
	// minutes of drift per day of month
	tideDriftMinutes = 50.0
)

// Approximate is a fixed-period tide model: four events a day shifted by a
// day-of-month drift, with heights drawn from Rand. It is a placeholder for a
// real harmonic prediction.
type Approximate struct {
	mu   sync.Mutex
	Rand *rand.Rand
}

// NewApproximate returns an Approximate model drawing heights from rng. A nil
// rng uses a randomly seeded source.
func NewApproximate(rng *rand.Rand) *Approximate {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Approximate{Rand: rng}
}

func (a *Approximate) sampleHeights() (high, low float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Rand == nil {
		a.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	high = 2.2 + a.Rand.Float64()*0.6
	low = 0.5 + a.Rand.Float64()*0.4
	return roundTenth(high), roundTenth(low)
}

type tideSlot struct {
	typ   TideType
	clock float64
}

// schedule returns the four event clock hours for the given day of month, in
// the order high, low, high, low before sorting.
func schedule(dayOfMonth int) []tideSlot {
	highA := tideBaseHigh
	lowA := highA + TidePeriod/2
	highB := highA + TidePeriod
	lowB := lowA + TidePeriod

	offset := float64(dayOfMonth) * tideDriftMinutes / 60
	slots := []tideSlot{
		{TideHigh, math.Mod(highA+offset, 24)},
		{TideLow, math.Mod(lowA+offset, 24)},
		{TideHigh, math.Mod(highB+offset, 24)},
		{TideLow, math.Mod(lowB+offset, 24)},
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].clock < slots[j].clock
	})
	return slots
}

// Tides implements TideModel.
func (a *Approximate) Tides(now time.Time) TideTable {
	highHeight, lowHeight := a.sampleHeights()
	height := func(t TideType) float64 {
		if t == TideHigh {
			return highHeight
		}
		return lowHeight
	}

	current := float64(now.Hour()) + float64(now.Minute())/60

	var table TideTable
	nextIdx := -1
	var haveHigh, haveLow bool
	for i, slot := range schedule(now.Day()) {
		diff := slot.clock - current
		ev := TideEvent{
			Type:         slot.typ,
			Time:         FormatClock(slot.clock),
			Height:       height(slot.typ),
			HoursFromNow: roundHundredth(diff),
			Status:       TideStatus(diff),
			clock:        slot.clock,
		}
		if diff > 0 {
			if nextIdx < 0 {
				nextIdx = i
			}
			if slot.typ == TideHigh && !haveHigh {
				table.NextHigh, haveHigh = ev, true
			}
			if slot.typ == TideLow && !haveLow {
				table.NextLow, haveLow = ev, true
			}
		}
		table.AllEvents = append(table.AllEvents, ev)
	}
	if nextIdx >= 0 {
		table.AllEvents[nextIdx].Next = true
		if table.NextHigh.clock == table.AllEvents[nextIdx].clock && haveHigh {
			table.NextHigh.Next = true
		}
		if table.NextLow.clock == table.AllEvents[nextIdx].clock && haveLow {
			table.NextLow.Next = true
		}
	}

	if haveHigh && haveLow {
		return table
	}

	// Roll over to the first events of the following day.
	tomorrow := now.AddDate(0, 0, 1)
	for _, slot := range schedule(tomorrow.Day()) {
		if (slot.typ == TideHigh && haveHigh) || (slot.typ == TideLow && haveLow) {
			continue
		}
		diff := slot.clock + 24 - current
		ev := TideEvent{
			Type:         slot.typ,
			Time:         FormatClock(slot.clock),
			Height:       height(slot.typ),
			HoursFromNow: roundHundredth(diff),
			Status:       StatusTomorrow,
			Tomorrow:     true,
			clock:        slot.clock,
		}
		if slot.typ == TideHigh {
			table.NextHigh, haveHigh = ev, true
		} else {
			table.NextLow, haveLow = ev, true
		}
	}
	return table
}

// StatusTomorrow labels events rolled over to the following day.
const StatusTomorrow = "Demain"

// TideStatus describes how far away an event is, given the signed number of
// hours until it.
func TideStatus(diff float64) string {
	switch {
	case diff <= 0:
		return "Passée"
	case diff < 1:
		return fmt.Sprintf("Dans %d min", int(math.Round(diff*60)))
	case diff < 3:
		total := int(math.Round(diff * 60))
		return fmt.Sprintf("Dans %dh%02d", total/60, total%60)
	case diff < 12:
		return "Aujourd'hui"
	default:
		return "Ce soir"
	}
}

// TideModelConfig selects a tide model.
type TideModelConfig struct {
	Kind      string `validate:"omitempty,oneof=approximate harmonic"`
	StationID string
}

const (
	TideModelApproximate = "approximate"
	TideModelHarmonic    = "harmonic"
)

// NewTideModel builds the configured tide model. Only the approximate model has
// a backend today.
func NewTideModel(cfg TideModelConfig, rng *rand.Rand) (TideModel, error) {
	switch cfg.Kind {
	case "", TideModelApproximate:
		return NewApproximate(rng), nil
	case TideModelHarmonic:
		if cfg.StationID == "" {
			return nil, fmt.Errorf("tide model %q requires a station id", cfg.Kind)
		}
		return nil, fmt.Errorf("tide model %q: no prediction backend for station %s", cfg.Kind, cfg.StationID)
	default:
		return nil, fmt.Errorf("unknown tide model %q", cfg.Kind)
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundHundredth(v float64) float64 {
	return math.Round(v*100) / 100
}
