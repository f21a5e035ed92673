package main

import (
	"fmt"
	"log"
	"time"

	"casaroja/internal/categories"
	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/locations"
	"casaroja/internal/shared/config"
	"casaroja/internal/shared/database"
	"casaroja/internal/transport"
	"casaroja/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Casa Roja Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"commissions",
		"payments",
		"ticket_cancellations",
		"passenger_bookings",
		"discount_redemptions",
		"tickets",
		"transport_services",
		"discounts",
		"events",
		"locations",
		"categories",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	categoryIDs, err := s.SeedCategories()
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	locationIDs, err := s.SeedLocations()
	if err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}

	eventIDs, err := s.SeedEvents(userIDs, categoryIDs, locationIDs)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if err := s.SeedDiscounts(eventIDs); err != nil {
		return fmt.Errorf("failed to seed discounts: %w", err)
	}

	if err := s.SeedTransportServices(userIDs, eventIDs); err != nil {
		return fmt.Errorf("failed to seed transport services: %w", err)
	}

	return nil
}

func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding users...")

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seedUsers := []users.User{
		{FirstName: "Marta", LastName: "Soto", Email: "manager@casaroja.cl", UserType: users.TypeManager, IsVerified: true},
		{FirstName: "Violeta", LastName: "Parra", Email: "violeta@casaroja.cl", UserType: users.TypeCultor, IsVerified: true},
		{FirstName: "Nicanor", LastName: "Leon", Email: "nicanor@casaroja.cl", UserType: users.TypeCultor, IsVerified: true},
		{FirstName: "Pedro", LastName: "Fuentes", Email: "pedro@casaroja.cl", UserType: users.TypeTransport, IsVerified: true},
		{FirstName: "Carla", LastName: "Rojas", Email: "carla@casaroja.cl", UserType: users.TypeEventCreator, IsVerified: true},
		{FirstName: "Diego", LastName: "Munoz", Email: "diego@example.com", UserType: users.TypeClient, IsVerified: true},
		{FirstName: "Ana", LastName: "Torres", Email: "ana@example.com", UserType: users.TypeClient, IsVerified: false},
	}

	ids := make(map[string]uuid.UUID)
	for i := range seedUsers {
		seedUsers[i].Password = string(password)
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return nil, err
		}
		ids[string(seedUsers[i].UserType)+":"+seedUsers[i].Email] = seedUsers[i].ID
	}

	ids["manager"] = seedUsers[0].ID
	ids["cultor"] = seedUsers[1].ID
	ids["cultor2"] = seedUsers[2].ID
	ids["transport"] = seedUsers[3].ID
	ids["event_creator"] = seedUsers[4].ID
	ids["client"] = seedUsers[5].ID

	fmt.Printf("  ✅ Created %d users\n", len(seedUsers))
	return ids, nil
}

func (s *Seeder) SeedCategories() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding categories...")

	seedCategories := []categories.Category{
		{Name: "Música Tradicional", Slug: "musica-tradicional", Description: "Cuecas, tonadas y canto popular", IsActive: true},
		{Name: "Danza", Slug: "danza", Description: "Danzas folclóricas y contemporáneas", IsActive: true},
		{Name: "Gastronomía", Slug: "gastronomia", Description: "Cocina tradicional chilena", IsActive: true},
		{Name: "Artesanía", Slug: "artesania", Description: "Talleres de oficios y artesanía", IsActive: true},
		{Name: "Teatro", Slug: "teatro", Description: "Teatro comunitario", IsActive: true},
	}

	ids := make(map[string]uuid.UUID)
	for i := range seedCategories {
		if err := s.db.PostgreSQL.Create(&seedCategories[i]).Error; err != nil {
			return nil, err
		}
		ids[seedCategories[i].Slug] = seedCategories[i].ID
	}

	fmt.Printf("  ✅ Created %d categories\n", len(seedCategories))
	return ids, nil
}

func (s *Seeder) SeedLocations() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding locations...")

	lat := -33.4489
	lng := -70.6693

	seedLocations := []locations.Location{
		{Name: "Casa Roja Central", Address: "Av. Matta 365", City: "Santiago", Region: "Metropolitana", Country: "Chile", Latitude: &lat, Longitude: &lng, IsActive: true},
		{Name: "Centro Cultural Valparaíso", Address: "Calle Condell 1231", City: "Valparaíso", Region: "Valparaíso", Country: "Chile", IsActive: true},
		{Name: "Sede Sur", Address: "Av. Alemania 0458", City: "Temuco", Region: "Araucanía", Country: "Chile", IsActive: true},
	}

	ids := make(map[string]uuid.UUID)
	for i := range seedLocations {
		if err := s.db.PostgreSQL.Create(&seedLocations[i]).Error; err != nil {
			return nil, err
		}
		ids[seedLocations[i].City] = seedLocations[i].ID
	}

	fmt.Printf("  ✅ Created %d locations\n", len(seedLocations))
	return ids, nil
}

func (s *Seeder) SeedEvents(userIDs, categoryIDs, locationIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding events...")

	now := time.Now()

	seedEvents := []events.Event{
		{
			Title:              "Noche de Cueca",
			Description:        "Velada de cueca brava con músicos en vivo",
			EventType:          "concert",
			CategoryID:         categoryIDs["musica-tradicional"],
			LocationID:         locationIDs["Santiago"],
			CultorID:           userIDs["cultor"],
			StartDatetime:      now.AddDate(0, 0, 14).Truncate(time.Hour),
			EndDatetime:        now.AddDate(0, 0, 14).Truncate(time.Hour).Add(4 * time.Hour),
			BasePrice:          decimal.NewFromInt(12000),
			MaxParticipants:    80,
			MinParticipants:    1,
			RequiresTransport:  false,
			Status:             events.EventStatusPublished,
			AllowsCancellation: true,
			CancellationHours:  24,
			Featured:           true,
			CreatedBy:          userIDs["cultor"],
		},
		{
			Title:              "Ruta Gastronómica Campesina",
			Description:        "Jornada de cocina tradicional en el campo con traslado incluido",
			EventType:          "workshop",
			CategoryID:         categoryIDs["gastronomia"],
			LocationID:         locationIDs["Temuco"],
			CultorID:           userIDs["cultor2"],
			StartDatetime:      now.AddDate(0, 1, 0).Truncate(time.Hour),
			EndDatetime:        now.AddDate(0, 1, 0).Truncate(time.Hour).Add(8 * time.Hour),
			BasePrice:          decimal.NewFromInt(25000),
			MaxParticipants:    30,
			MinParticipants:    5,
			RequiresTransport:  true,
			Status:             events.EventStatusPublished,
			AllowsCancellation: true,
			CancellationHours:  48,
			CreatedBy:          userIDs["event_creator"],
		},
		{
			Title:           "Taller de Telar Mapuche",
			Description:     "Taller introductorio de witral",
			EventType:       "workshop",
			CategoryID:      categoryIDs["artesania"],
			LocationID:      locationIDs["Valparaíso"],
			CultorID:        userIDs["cultor2"],
			StartDatetime:   now.AddDate(0, 2, 0).Truncate(time.Hour),
			EndDatetime:     now.AddDate(0, 2, 0).Truncate(time.Hour).Add(3 * time.Hour),
			BasePrice:       decimal.NewFromInt(8000),
			MaxParticipants: 15,
			MinParticipants: 3,
			Status:          events.EventStatusDraft,
			CreatedBy:       userIDs["cultor2"],
		},
	}

	ids := make(map[string]uuid.UUID)
	for i := range seedEvents {
		if err := s.db.PostgreSQL.Create(&seedEvents[i]).Error; err != nil {
			return nil, err
		}
		ids[seedEvents[i].Title] = seedEvents[i].ID
	}

	fmt.Printf("  ✅ Created %d events\n", len(seedEvents))
	return ids, nil
}

func (s *Seeder) SeedDiscounts(eventIDs map[string]uuid.UUID) error {
	fmt.Println("  Seeding discounts...")

	now := time.Now()

	seedDiscounts := []discounts.Discount{
		{
			EventID:        eventIDs["Noche de Cueca"],
			Code:           "CUECA10",
			DiscountType:   discounts.DiscountTypePercentage,
			Value:          decimal.NewFromInt(10),
			MaxUses:        50,
			MaxUsesPerUser: 1,
			ValidFrom:      now,
			ValidUntil:     now.AddDate(0, 0, 13),
			IsActive:       true,
		},
		{
			EventID:             eventIDs["Ruta Gastronómica Campesina"],
			Code:                "CAMPO5000",
			DiscountType:        discounts.DiscountTypeFixed,
			Value:               decimal.NewFromInt(5000),
			MaxUses:             20,
			MaxUsesPerUser:      1,
			MinimumAmount:       decimal.NewFromInt(25000),
			ApplicableUserTypes: "client",
			ValidFrom:           now,
			ValidUntil:          now.AddDate(0, 0, 28),
			IsActive:            true,
		},
	}

	for i := range seedDiscounts {
		if err := s.db.PostgreSQL.Create(&seedDiscounts[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("  ✅ Created %d discounts\n", len(seedDiscounts))
	return nil
}

func (s *Seeder) SeedTransportServices(userIDs, eventIDs map[string]uuid.UUID) error {
	fmt.Println("  Seeding transport services...")

	now := time.Now()

	seedServices := []transport.TransportService{
		{
			EventID:            eventIDs["Ruta Gastronómica Campesina"],
			ProviderID:         userIDs["transport"],
			DriverName:         "Pedro Fuentes",
			VehicleDescription: "Bus Mercedes 30 asientos, patente GH-KL-12",
			DepartureLocation:  "Plaza de Armas, Temuco",
			DepartureTime:      now.AddDate(0, 1, 0).Truncate(time.Hour).Add(-2 * time.Hour),
			ArrivalLocation:    "Fundo Los Copihues",
			MaxPassengers:      30,
			PricePerPassenger:  decimal.NewFromInt(5000),
			Status:             transport.ServiceStatusScheduled,
		},
	}

	for i := range seedServices {
		if err := s.db.PostgreSQL.Create(&seedServices[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("  ✅ Created %d transport services\n", len(seedServices))
	return nil
}
