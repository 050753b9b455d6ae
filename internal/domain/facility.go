package domain

// FacilityConfig represents the facility a report is built for
type FacilityConfig struct {
	Name            string
	CapacityPerHour float64 // parallel bookable resources (courts) per open hour
}

// BookingRecord raw booking row as read from the document store
type BookingRecord struct {
	Row       int // 1-based row number in the source tab, for diagnostics
	Date      Cell
	StartTime Cell
	EndTime   Cell
	Hours     Cell
}

// IsComplete returns true if the fields consumed by aggregation are present
func (b *BookingRecord) IsComplete() bool {
	return !b.Date.IsEmpty() && !b.StartTime.IsEmpty() && !b.Hours.IsEmpty()
}

// BookingSource one of the two parallel booking lists
type BookingSource string

const (
	SourceUnsplit BookingSource = "unsplit" // one row per booking
	SourceSplit   BookingSource = "split"   // one row per booked hour
)
