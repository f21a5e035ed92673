package database

import (
	"casaroja/internal/categories"
	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/locations"
	"casaroja/internal/payments"
	"casaroja/internal/tickets"
	"casaroja/internal/transport"
	"casaroja/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&categories.Category{},
		&locations.Location{},
		&events.Event{},
		&discounts.Discount{},
		&discounts.Redemption{},
		&tickets.Ticket{},
		&tickets.Cancellation{},
		&payments.Payment{},
		&payments.Commission{},
		&transport.TransportService{},
		&transport.PassengerBooking{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
