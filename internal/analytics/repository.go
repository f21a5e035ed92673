package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	GetEventRevenue(eventID uuid.UUID) (*EventRevenue, error)
	GetCultorEarnings(cultorID uuid.UUID) (*CultorEarnings, error)
	GetPlatformOverview() (*PlatformOverview, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type decimalSums struct {
	Gross     decimal.Decimal
	Platform  decimal.Decimal
	Transport decimal.Decimal
	Cultor    decimal.Decimal
	Count     int64
}

func (r *repository) GetEventRevenue(eventID uuid.UUID) (*EventRevenue, error) {
	var event struct {
		Title string
	}
	if err := r.db.Table("events").
		Select("title").
		Where("id = ?", eventID).
		Take(&event).Error; err != nil {
		return nil, err
	}

	var sums decimalSums
	err := r.db.Table("commissions").
		Select(`COALESCE(SUM(gross_amount), 0) AS gross,
			COALESCE(SUM(platform_commission), 0) AS platform,
			COALESCE(SUM(transport_commission), 0) AS transport,
			COALESCE(SUM(cultor_earning), 0) AS cultor,
			COUNT(*) AS count`).
		Where("event_id = ?", eventID).
		Take(&sums).Error
	if err != nil {
		return nil, err
	}

	var ticketsSold, participants int64
	err = r.db.Table("tickets").
		Select("COUNT(*)").
		Where("event_id = ? AND status IN ?", eventID, []string{"confirmed", "used"}).
		Take(&ticketsSold).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("tickets").
		Select("COALESCE(SUM(participants_count), 0)").
		Where("event_id = ? AND status IN ?", eventID, []string{"confirmed", "used"}).
		Take(&participants).Error
	if err != nil {
		return nil, err
	}

	return &EventRevenue{
		EventID:             eventID.String(),
		EventTitle:          event.Title,
		TicketsSold:         ticketsSold,
		ParticipantsTotal:   participants,
		GrossRevenue:        sums.Gross,
		PlatformCommission:  sums.Platform,
		TransportCommission: sums.Transport,
		CultorEarnings:      sums.Cultor,
		Currency:            "CLP",
	}, nil
}

func (r *repository) GetCultorEarnings(cultorID uuid.UUID) (*CultorEarnings, error) {
	var sums decimalSums
	err := r.db.Table("commissions").
		Select(`COALESCE(SUM(gross_amount), 0) AS gross,
			COALESCE(SUM(cultor_earning), 0) AS cultor,
			COUNT(*) AS count`).
		Where("cultor_id = ?", cultorID).
		Take(&sums).Error
	if err != nil {
		return nil, err
	}

	var pending decimal.Decimal
	err = r.db.Table("commissions").
		Select("COALESCE(SUM(cultor_earning), 0)").
		Where("cultor_id = ? AND payout_status = ?", cultorID, "pending").
		Take(&pending).Error
	if err != nil {
		return nil, err
	}

	var perEvent []struct {
		EventID  uuid.UUID
		Title    string
		Count    int64
		Gross    decimal.Decimal
		Earnings decimal.Decimal
	}
	err = r.db.Table("commissions").
		Select(`commissions.event_id,
			events.title,
			COUNT(*) AS count,
			COALESCE(SUM(commissions.gross_amount), 0) AS gross,
			COALESCE(SUM(commissions.cultor_earning), 0) AS earnings`).
		Joins("JOIN events ON events.id = commissions.event_id").
		Where("commissions.cultor_id = ?", cultorID).
		Group("commissions.event_id, events.title").
		Order("earnings DESC").
		Scan(&perEvent).Error
	if err != nil {
		return nil, err
	}

	earnings := &CultorEarnings{
		CultorID:        cultorID.String(),
		EventsWithSales: int64(len(perEvent)),
		PaymentsTotal:   sums.Count,
		GrossRevenue:    sums.Gross,
		TotalEarnings:   sums.Cultor,
		PendingPayout:   pending,
		PerEvent:        make([]CultorEventEarnings, len(perEvent)),
	}

	for i, row := range perEvent {
		earnings.PerEvent[i] = CultorEventEarnings{
			EventID:       row.EventID.String(),
			EventTitle:    row.Title,
			PaymentsTotal: row.Count,
			GrossRevenue:  row.Gross,
			Earnings:      row.Earnings,
		}
	}

	return earnings, nil
}

func (r *repository) GetPlatformOverview() (*PlatformOverview, error) {
	overview := &PlatformOverview{GeneratedAt: time.Now()}

	if err := r.db.Table("events").Select("COUNT(*)").Take(&overview.TotalEvents).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("events").
		Select("COUNT(*)").
		Where("status = ?", "published").
		Take(&overview.PublishedEvents).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("tickets").
		Select("COUNT(*)").
		Where("status IN ?", []string{"confirmed", "used"}).
		Take(&overview.TicketsSold).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("tickets").
		Select("COUNT(*)").
		Where("status = ?", "cancelled").
		Take(&overview.TicketsCancelled).Error; err != nil {
		return nil, err
	}

	var sums decimalSums
	err := r.db.Table("commissions").
		Select(`COALESCE(SUM(gross_amount), 0) AS gross,
			COALESCE(SUM(platform_commission), 0) AS platform,
			COALESCE(SUM(cultor_earning), 0) AS cultor`).
		Take(&sums).Error
	if err != nil {
		return nil, err
	}

	overview.GrossRevenue = sums.Gross
	overview.PlatformCommission = sums.Platform
	overview.CultorEarnings = sums.Cultor

	return overview, nil
}
