package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"barbershop-web/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSource struct {
	barbers      []models.Barber
	appointments models.Appointments
	err          error
}

func (f fakeSource) AdminBarbers(context.Context) ([]models.Barber, error) {
	return f.barbers, f.err
}

func (f fakeSource) AdminAppointments(context.Context) (models.Appointments, error) {
	return f.appointments, f.err
}

type sentMessage struct{ to, body string }

type fakeSMS struct {
	sent    []sentMessage
	failFor string
}

func (f *fakeSMS) Send(_ context.Context, to, body string) (string, error) {
	if to == f.failFor {
		return "", errors.New("undeliverable")
	}
	f.sent = append(f.sent, sentMessage{to, body})
	return fmt.Sprintf("SM%d", len(f.sent)), nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NotificationLog{}))
	return db
}

func reminderFixture() fakeSource {
	return fakeSource{
		barbers: []models.Barber{
			{ID: 1, Name: "Omar", Phone: "+962790000001", IsActive: true},
			{ID: 2, Name: "Ali", Phone: "+962790000002", IsActive: true},
			{ID: 3, Name: "Sami", Phone: "+962790000003", IsActive: false},
			{ID: 4, Name: "Noor", Phone: "", IsActive: true},
		},
		appointments: models.Appointments{
			{ID: 10, Barber: "Omar", Service: "Fade", Customer: "John", Date: "2024-05-01T00:00:00.000Z", Time: "02:00 PM", Status: models.StatusApproved},
			{ID: 11, Barber: "omar", Service: "Shave", Customer: "Adam", Date: "2024-05-01", Time: "09:30 AM", Status: models.StatusApproved},
			{ID: 12, Barber: "Omar", Service: "Trim", Date: "2024-05-01", Time: "11:00 AM", Status: models.StatusPending},
			{ID: 13, Barber: "Omar", Service: "Trim", Date: "2024-05-02", Time: "11:00 AM", Status: models.StatusApproved},
			{ID: 14, Barber: "Sami", Service: "Trim", Date: "2024-05-01", Time: "11:00 AM", Status: models.StatusApproved},
			{ID: 15, Barber: "Noor", Service: "Trim", Date: "2024-05-01", Time: "11:00 AM", Status: models.StatusApproved},
		},
	}
}

func TestSendDailySchedules_SendsApprovedTodayPerBarber(t *testing.T) {
	db := testDB(t)
	sms := &fakeSMS{}
	svc := NewReminderService(db, reminderFixture(), sms, discardLogger())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	sent, err := svc.SendDailySchedules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+962790000001", sms.sent[0].to)
	assert.Equal(t, "Hi Omar, your appointments for 2024-05-01:\n09:30 AM Shave with Adam\n02:00 PM Fade with John", sms.sent[0].body)

	var logs []models.NotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "sent", logs[0].Status)
	assert.Equal(t, "SM1", logs[0].ProviderSID)
	assert.Equal(t, 2, logs[0].Appointments)
}

func TestSendDailySchedules_LogsFailures(t *testing.T) {
	db := testDB(t)
	sms := &fakeSMS{failFor: "+962790000001"}
	svc := NewReminderService(db, reminderFixture(), sms, discardLogger())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	sent, err := svc.SendDailySchedules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, "undeliverable", entry.ErrorMessage)
}

func TestSendDailySchedules_SourceError(t *testing.T) {
	svc := NewReminderService(nil, fakeSource{err: errors.New("down")}, &fakeSMS{}, discardLogger())

	_, err := svc.SendDailySchedules(context.Background())

	assert.ErrorContains(t, err, "down")
}

func TestBarberDay_MatchesByIDWhenPresent(t *testing.T) {
	list := models.Appointments{
		{ID: 1, BarberID: 2, Barber: "Omar", Date: "2024-05-01", Time: "10:00 AM"},
		{ID: 2, BarberID: 1, Barber: "Omar", Date: "2024-05-01", Time: "09:00 AM"},
	}

	got := BarberDay(list, models.Barber{ID: 1, Name: "Omar"}, "2024-05-01")

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}
