package models

import (
	"sort"
	"time"
)

// TimelineKind tags the variant held by a TimelineItem.
type TimelineKind string

const (
	TimelineIncidente   TimelineKind = "incidente"
	TimelineObservacion TimelineKind = "observacion"
)

// TimelineItem is a tagged variant combining incident records and
// observations into a single history view. Exactly one of the two
// payloads is set.
type TimelineItem struct {
	Kind        TimelineKind             `json:"tipo"`
	Incidente   *RegistroConductaDetalle `json:"incidente,omitempty"`
	Observacion *ObservacionDetalle      `json:"observacion,omitempty"`
}

// Fecha extracts the shared sort date. A zero date is reported as nil
// so malformed rows sink to the end of the timeline.
func (t TimelineItem) Fecha() *time.Time {
	switch t.Kind {
	case TimelineIncidente:
		if t.Incidente == nil || t.Incidente.FechaRegistro.IsZero() {
			return nil
		}
		f := t.Incidente.FechaRegistro
		return &f
	case TimelineObservacion:
		if t.Observacion == nil || t.Observacion.Fecha.IsZero() {
			return nil
		}
		f := t.Observacion.Fecha
		return &f
	}
	return nil
}

// BuildTimeline merges incidents and observations sorted by date
// descending, with nil dates last.
func BuildTimeline(incidentes []RegistroConductaDetalle, observaciones []ObservacionDetalle) []TimelineItem {
	items := make([]TimelineItem, 0, len(incidentes)+len(observaciones))
	for i := range incidentes {
		items = append(items, TimelineItem{Kind: TimelineIncidente, Incidente: &incidentes[i]})
	}
	for i := range observaciones {
		items = append(items, TimelineItem{Kind: TimelineObservacion, Observacion: &observaciones[i]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Fecha(), items[j].Fecha()
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return items
}
