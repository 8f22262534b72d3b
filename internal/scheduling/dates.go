package scheduling

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	preferredHour  = 10
	suggestedSlots = 3
)

// parseSlot parses a YYYY-MM-DD date and HH:MM time in loc.
func parseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid interview date/time %q: %w", value, err)
	}
	return t, nil
}

// ensureFuture moves a slot that is not after now forward by one day,
// keeping the time of day. ok is false when the slot is still not in the future.
func ensureFuture(slot, now time.Time) (time.Time, bool) {
	if slot.After(now) {
		return slot, true
	}
	shifted := slot.AddDate(0, 0, 1)
	return shifted, shifted.After(now)
}

// slotHour is the hour used for default slots.
func (o Options) slotHour() int {
	if preferredHour >= o.BusinessStart && preferredHour < o.BusinessEnd {
		return preferredHour
	}
	return o.BusinessStart
}

// defaultSlot is tomorrow at the slot hour.
func (o Options) defaultSlot(now time.Time) time.Time {
	now = now.In(o.Location)
	return time.Date(now.Year(), now.Month(), now.Day()+1, o.slotHour(), 0, 0, 0, o.Location)
}

// suggestSlots returns first followed by slots on the next calendar days.
// Follow-up slots keep first's time of day when it is inside business hours.
func (o Options) suggestSlots(first time.Time) []time.Time {
	first = first.In(o.Location)
	hour, minute := first.Hour(), first.Minute()
	if hour < o.BusinessStart || hour >= o.BusinessEnd {
		hour, minute = o.slotHour(), 0
	}

	slots := make([]time.Time, 0, suggestedSlots)
	slots = append(slots, first)
	for day := 1; len(slots) < suggestedSlots; day++ {
		slots = append(slots, time.Date(first.Year(), first.Month(), first.Day()+day, hour, minute, 0, 0, o.Location))
	}
	return slots
}
