package notification

import (
	"fmt"

	"rental-booking/models/rental"
)

// MessageFor maps a new order status to the LINE push text sent to the
// customer. The second return is false for statuses that send nothing
// (PENDING_PAYMENT, WAITING_CONFIRMATION, IN_USE, CANCELLED).
func MessageFor(status rental.Status, productName, rentalRef, note string) (string, bool) {
	switch status {
	case rental.StatusApproved:
		return fmt.Sprintf("Your booking for %s has been approved! 🎉 (Ref: %s)", productName, rentalRef), true
	case rental.StatusRejected:
		if note == "" {
			note = "Please contact the shop for details."
		}
		return fmt.Sprintf("Sorry, your booking %s was rejected. Reason: %s", rentalRef, note), true
	case rental.StatusWaitingDelivery:
		return fmt.Sprintf("Your rental %s is ready for delivery. 🚚 We will contact you shortly.", rentalRef), true
	case rental.StatusReturned:
		return fmt.Sprintf("Your rental %s is complete. Thank you for renting with us! 🙏", rentalRef), true
	default:
		return "", false
	}
}
