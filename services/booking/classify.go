package booking

import (
	"sort"
	"time"

	"medibook/models"
)

// ClassifyAppointments partitions appointments relative to asOf: upcoming
// (start at or after asOf) ordered soonest first, history (start before asOf)
// ordered most recent first. Pure function; the input is never mutated and
// every appointment lands in exactly one bucket.
func ClassifyAppointments(appointments []models.Appointment, asOf time.Time) models.ClassifiedAppointments {
	out := models.ClassifiedAppointments{
		Upcoming: []models.Appointment{},
		History:  []models.Appointment{},
	}
	for _, a := range appointments {
		if a.StartTime().Before(asOf) {
			out.History = append(out.History, a)
		} else {
			out.Upcoming = append(out.Upcoming, a)
		}
	}
	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].StartTime().Before(out.Upcoming[j].StartTime())
	})
	sort.SliceStable(out.History, func(i, j int) bool {
		return out.History[i].StartTime().After(out.History[j].StartTime())
	})
	return out
}
