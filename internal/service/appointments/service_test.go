package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	cancelledID   int64
	cancelReason  string
	updatedStatus domain.AppointmentStatus
	deletedBefore time.Time
	purgeCount    int64
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.StaffID == nil || *a.StaffID != filter.StaffID {
			continue
		}
		if !filter.IncludeInactive && !a.IsBlocking() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	f.updatedStatus = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, reason string) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = domain.StatusCancelled
	f.cancelledID = id
	f.cancelReason = reason
	return nil
}

func (f *fakeAppointmentRepo) DeleteIncompleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.deletedBefore = cutoff
	return f.purgeCount, nil
}

type fakeSettingsRepo struct {
	settings *domain.SchedulingSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.SchedulingSettings, error) {
	return f.settings, nil
}

type fakeSlotCache struct {
	invalidated []string
}

func (f *fakeSlotCache) InvalidateDate(ctx context.Context, date string) {
	f.invalidated = append(f.invalidated, date)
}

type fakeNotifier struct {
	cancelled []notifier.AppointmentEvent
}

func (f *fakeNotifier) PublishAppointmentCancelled(ctx context.Context, event notifier.AppointmentEvent) {
	f.cancelled = append(f.cancelled, event)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func testAppointment() *domain.Appointment {
	staffID := int64(7)
	return &domain.Appointment{
		ID:              42,
		CustomerID:      100,
		StaffID:         &staffID,
		ServiceID:       5,
		StartAt:         time.Date(2026, 9, 15, 10, 0, 0, 0, time.Local),
		EndAt:           time.Date(2026, 9, 15, 11, 0, 0, 0, time.Local),
		DurationMinutes: 60,
		PersonCount:     1,
		Price:           50,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Haircut",
	}
}

func newTestService(repo *fakeAppointmentRepo, now time.Time) (*Service, *fakeSlotCache, *fakeNotifier) {
	cache := &fakeSlotCache{}
	notif := &fakeNotifier{}
	svc := NewService(
		repo,
		&fakeSettingsRepo{settings: domain.DefaultSchedulingSettings()},
		cache,
		notif,
		fixedTime{now: now},
		nopLogger{},
	)
	return svc, cache, notif
}

func TestGetByID(t *testing.T) {
	appt := testAppointment()
	repo := newFakeAppointmentRepo(appt)
	svc, _, _ := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

	t.Run("owner can read own appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 42, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "2026-09-15", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("other customer is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("service access bypasses owner check", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 42, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.CustomerID)
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 777, 100)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("success invalidates cache and publishes event", func(t *testing.T) {
		appt := testAppointment()
		repo := newFakeAppointmentRepo(appt)
		// За сутки до начала, срок отмены (120 минут) ещё не истёк
		svc, cache, notif := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

		err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
			CustomerID:         100,
			CancellationReason: "plans changed",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), repo.cancelledID)
		assert.Equal(t, "plans changed", repo.cancelReason)
		assert.Equal(t, []string{"2026-09-15"}, cache.invalidated)

		require.Len(t, notif.cancelled, 1)
		assert.Equal(t, int64(42), notif.cancelled[0].AppointmentID)
		assert.Equal(t, string(domain.StatusCancelled), notif.cancelled[0].Status)
		assert.Equal(t, "plans changed", notif.cancelled[0].Reason)
	})

	t.Run("not the owner", func(t *testing.T) {
		appt := testAppointment()
		repo := newFakeAppointmentRepo(appt)
		svc, _, _ := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

		err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{CustomerID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		appt := testAppointment()
		appt.Status = domain.StatusCompleted
		repo := newFakeAppointmentRepo(appt)
		svc, _, _ := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

		err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{CustomerID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("cancellation window passed", func(t *testing.T) {
		appt := testAppointment()
		repo := newFakeAppointmentRepo(appt)
		// За час до начала при сроке отмены 120 минут
		svc, cache, notif := newTestService(repo, appt.StartAt.Add(-time.Hour))

		err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{CustomerID: 100})
		assert.ErrorIs(t, err, ErrCancellationTooLate)
		assert.Empty(t, cache.invalidated)
		assert.Empty(t, notif.cancelled)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("blocking transition invalidates cache", func(t *testing.T) {
		appt := testAppointment()
		repo := newFakeAppointmentRepo(appt)
		svc, cache, _ := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

		err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, repo.updatedStatus)
		// rejected остаётся блокирующим, кэш не трогаем
		assert.Empty(t, cache.invalidated)

		err = svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "incomplete"})
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-09-15"}, cache.invalidated)
	})

	t.Run("invalid status", func(t *testing.T) {
		appt := testAppointment()
		repo := newFakeAppointmentRepo(appt)
		svc, _, _ := newTestService(repo, appt.StartAt.Add(-24*time.Hour))

		err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "paused"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPurgeIncomplete(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.purgeCount = 3
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)
	svc, _, _ := newTestService(repo, now)

	deleted, err := svc.PurgeIncomplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	// Порог = now - incomplete_timeout (15 минут по умолчанию)
	expected := now.Add(-time.Duration(domain.DefaultIncompleteTimeoutMinutes) * time.Minute)
	assert.True(t, repo.deletedBefore.Equal(expected))
}
