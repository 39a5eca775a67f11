package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"barbershop-web/models"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ScheduleSource is the admin view of the backend the reminder job reads.
type ScheduleSource interface {
	AdminBarbers(ctx context.Context) ([]models.Barber, error)
	AdminAppointments(ctx context.Context) (models.Appointments, error)
}

// SMSSender delivers a text message and returns the provider's message id.
type SMSSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderService texts each active barber their approved appointments for
// the day. Deliveries are logged to NotificationLog when a database is set.
type ReminderService struct {
	db     *gorm.DB
	source ScheduleSource
	sms    SMSSender
	log    *slog.Logger
	now    func() time.Time
}

func NewReminderService(db *gorm.DB, source ScheduleSource, sms SMSSender, log *slog.Logger) *ReminderService {
	return &ReminderService{db: db, source: source, sms: sms, log: log, now: time.Now}
}

// Schedule registers the daily run on c.
func (s *ReminderService) Schedule(c *cron.Cron, spec string) error {
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.SendDailySchedules(ctx); err != nil {
			s.log.Error("daily schedule run failed", sl.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("services.ReminderService.Schedule: %w", err)
	}
	s.log.Info("barber schedule reminders scheduled", slog.String("spec", spec))
	return nil
}

// SendDailySchedules sends today's schedules and returns how many messages
// went out.
func (s *ReminderService) SendDailySchedules(ctx context.Context) (int, error) {
	const op = "services.ReminderService.SendDailySchedules"

	barbers, err := s.source.AdminBarbers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	appointments, err := s.source.AdminAppointments(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	today := s.now().Format(utils.DateLayout)
	todays := appointments.WithStatus(models.StatusApproved)

	sent := 0
	for _, b := range models.ActiveBarbers(barbers) {
		phone := strings.TrimSpace(string(b.Phone))
		if phone == "" || !utils.ValidatePhone(phone) {
			continue
		}
		mine := BarberDay(todays, b, today)
		if len(mine) == 0 {
			continue
		}
		if s.notify(ctx, b, phone, today, mine) {
			sent++
		}
	}
	s.log.Info("daily schedules processed", slog.String("date", today), slog.Int("sent", sent))
	return sent, nil
}

func (s *ReminderService) notify(ctx context.Context, b models.Barber, phone, date string, list models.Appointments) bool {
	message := ScheduleMessage(b.Name, date, list)

	entry := models.NotificationLog{
		BarberID:     b.ID,
		Phone:        phone,
		ScheduleDate: date,
		Appointments: len(list),
		Message:      message,
		Status:       "sent",
		SentAt:       s.now(),
	}

	sid, err := s.sms.Send(ctx, phone, message)
	if err != nil {
		s.log.Error("schedule sms failed", slog.Int64("barber_id", b.ID), sl.Err(err))
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		entry.ProviderSID = sid
	}

	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			s.log.Error("failed to log schedule sms", slog.Int64("barber_id", b.ID), sl.Err(err))
		}
	}
	return entry.Status == "sent"
}

// BarberDay returns b's appointments on date, earliest first. Rows are matched
// by barber id when the listing has one, otherwise by name.
func BarberDay(list models.Appointments, b models.Barber, date string) models.Appointments {
	out := models.Appointments{}
	for _, a := range list {
		if utils.NormalizeDate(a.Date) != date {
			continue
		}
		if a.BarberID != 0 {
			if a.BarberID != b.ID {
				continue
			}
		} else if !strings.EqualFold(strings.TrimSpace(a.BarberLabel()), strings.TrimSpace(b.Name)) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := utils.SlotOffset(out[i].Time)
		tj, _ := utils.SlotOffset(out[j].Time)
		return ti < tj
	})
	return out
}

func ScheduleMessage(barber, date string, list models.Appointments) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s, your appointments for %s:", barber, date)
	for _, a := range list {
		fmt.Fprintf(&sb, "\n%s %s", a.Time, a.ServiceLabel())
		if a.Customer != "" {
			fmt.Fprintf(&sb, " with %s", a.Customer)
		}
	}
	return sb.String()
}
