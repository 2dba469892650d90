package tracking

import (
	"math"
	"testing"

	"github.com/Vallabhkejgir/Location-Tracker/internal/geofence"
	"github.com/stretchr/testify/require"
)

func TestTracker_UnsetByDefault(t *testing.T) {
	tr := NewTracker()
	cur, dest := tr.Snapshot()
	require.Nil(t, cur)
	require.Nil(t, dest)
}

func TestTracker_OverwriteSemantics(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.SetDestination(geofence.Coordinate{Lat: 1, Lng: 2}))
	tr.UpdatePosition(geofence.Coordinate{Lat: 10, Lng: 20})
	tr.UpdatePosition(geofence.Coordinate{Lat: 30, Lng: 40})

	cur, dest := tr.Snapshot()
	require.Equal(t, geofence.Coordinate{Lat: 30, Lng: 40}, *cur)
	require.Equal(t, geofence.Coordinate{Lat: 1, Lng: 2}, *dest)
}

func TestTracker_RejectsNonFiniteDestination(t *testing.T) {
	tr := NewTracker()
	err := tr.SetDestination(geofence.Coordinate{Lat: math.NaN(), Lng: 0})
	require.ErrorIs(t, err, ErrNonFiniteCoordinate)
	require.Nil(t, tr.Destination())
}

func TestTracker_AlertLatch(t *testing.T) {
	tr := NewTracker()

	// first in-range update fires, subsequent ones don't
	require.True(t, tr.RecordArrival(true))
	require.False(t, tr.RecordArrival(true))
	require.False(t, tr.RecordArrival(true))

	// leaving the radius re-arms the latch
	require.False(t, tr.RecordArrival(false))
	require.True(t, tr.RecordArrival(true))
}

func TestTracker_SetDestinationRearmsLatch(t *testing.T) {
	tr := NewTracker()
	require.True(t, tr.RecordArrival(true))
	require.NoError(t, tr.SetDestination(geofence.Coordinate{Lat: 5, Lng: 5}))
	require.True(t, tr.RecordArrival(true))
}
