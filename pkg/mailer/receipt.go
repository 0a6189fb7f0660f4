package mailer

import (
	"fmt"
	"strings"

	"github.com/swiftride/api/pkg/events"
)

// TripReceipt renders the subject and plain-text body for a completed-ride
// receipt email.
func TripReceipt(ev events.RideEvent) (subject, text string) {
	subject = "Your trip receipt"

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for riding with us!\n\n")
	fmt.Fprintf(&b, "Trip: %s -> %s\n", ev.PickupAddress, ev.DropoffAddress)
	fmt.Fprintf(&b, "Vehicle: %s\n", ev.RideType)
	fmt.Fprintf(&b, "Fare: %d\n", ev.Fare)
	fmt.Fprintf(&b, "Completed: %s\n", ev.OccurredAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	return subject, b.String()
}
