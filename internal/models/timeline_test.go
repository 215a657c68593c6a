package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimelineOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	incidentes := []RegistroConductaDetalle{
		{RegistroConducta: RegistroConducta{ID: 1, FechaRegistro: base}},
		{RegistroConducta: RegistroConducta{ID: 2, FechaRegistro: base.AddDate(0, 0, 2)}},
	}
	observaciones := []ObservacionDetalle{
		{Observacion: Observacion{ID: 3, Fecha: base.AddDate(0, 0, 1)}},
	}

	timeline := BuildTimeline(incidentes, observaciones)
	require.Len(t, timeline, 3)

	assert.Equal(t, TimelineIncidente, timeline[0].Kind)
	assert.Equal(t, int64(2), timeline[0].Incidente.ID)
	assert.Equal(t, TimelineObservacion, timeline[1].Kind)
	assert.Equal(t, TimelineIncidente, timeline[2].Kind)
	assert.Equal(t, int64(1), timeline[2].Incidente.ID)
}

func TestBuildTimelineZeroDatesSinkLast(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	incidentes := []RegistroConductaDetalle{
		{RegistroConducta: RegistroConducta{ID: 1}},
		{RegistroConducta: RegistroConducta{ID: 2, FechaRegistro: base}},
	}

	timeline := BuildTimeline(incidentes, nil)
	require.Len(t, timeline, 2)

	assert.Equal(t, int64(2), timeline[0].Incidente.ID)
	assert.Nil(t, timeline[1].Fecha())
}

func TestBuildTimelineStableForEqualDates(t *testing.T) {
	fecha := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	incidentes := []RegistroConductaDetalle{
		{RegistroConducta: RegistroConducta{ID: 1, FechaRegistro: fecha}},
	}
	observaciones := []ObservacionDetalle{
		{Observacion: Observacion{ID: 2, Fecha: fecha}},
	}

	timeline := BuildTimeline(incidentes, observaciones)
	require.Len(t, timeline, 2)

	// Insertion order is preserved on ties: incidents were appended first.
	assert.Equal(t, TimelineIncidente, timeline[0].Kind)
	assert.Equal(t, TimelineObservacion, timeline[1].Kind)
}
