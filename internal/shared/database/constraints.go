package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Exactly one commission per completed payment
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_commission_per_payment
		ON commissions (payment_id);
	`).Error
	if err != nil {
		return err
	}

	// One transport seat per ticket
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_passenger_booking_per_ticket
		ON passenger_bookings (ticket_id);
	`).Error
	if err != nil {
		return err
	}

	// Transport capacity can never go negative or above the vehicle limit
	err = db.Exec(`
		ALTER TABLE transport_services
		DROP CONSTRAINT IF EXISTS check_transport_capacity;
	`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		ALTER TABLE transport_services
		ADD CONSTRAINT check_transport_capacity
		CHECK (current_passengers >= 0 AND current_passengers <= max_passengers);
	`).Error
	if err != nil {
		return err
	}

	// Index for the sold-ticket count the allocator runs under the event row lock
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_event_status
		ON tickets (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Per-user redemption lookups for discount validation
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_redemptions_discount_user
		ON discount_redemptions (discount_id, user_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
