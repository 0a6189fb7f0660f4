package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	all := []RideStatus{RideRequested, RideAccepted, RideInProgress, RideCompleted, RideCancelled}
	allowed := map[RideStatus]map[RideStatus]bool{
		RideRequested:  {RideAccepted: true, RideCancelled: true},
		RideAccepted:   {RideInProgress: true, RideCancelled: true},
		RideInProgress: {RideCompleted: true, RideCancelled: true},
		RideCompleted:  {},
		RideCancelled:  {},
	}
	for _, from := range all {
		for _, to := range all {
			require.Equal(t, allowed[from][to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestRideStatusValid(t *testing.T) {
	for _, s := range []RideStatus{RideRequested, RideAccepted, RideInProgress, RideCompleted, RideCancelled} {
		require.True(t, s.Valid(), "%s", s)
	}
	require.False(t, RideStatus("parked").Valid())
	require.False(t, RideStatus("").Valid())
}
