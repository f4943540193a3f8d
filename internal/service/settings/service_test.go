package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeSettingsRepo struct {
	settings *domain.SchedulingSettings
	updated  *domain.SchedulingSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.SchedulingSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *domain.SchedulingSettings) error {
	if f.settings == nil {
		return settingsRepo.ErrSettingsNotFound
	}
	f.updated = s
	return nil
}

func storedSettings() *domain.SchedulingSettings {
	s := domain.DefaultSchedulingSettings()
	s.ID = 1
	return s
}

func TestGet_ReturnsDefaultsWhenMissing(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotLengthMinutes, resp.SlotLengthMinutes)
	assert.Equal(t, "local", resp.BusinessTimezone)
	assert.False(t, resp.GroupBookingEnabled)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	repo := &fakeSettingsRepo{settings: storedSettings()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		SlotLengthMinutes:   ptr.Ptr(45),
		GroupBookingEnabled: ptr.Ptr(true),
		MaxPersons:          ptr.Ptr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.SlotLengthMinutes)
	assert.True(t, resp.GroupBookingEnabled)
	assert.Equal(t, 6, resp.MaxPersons)
	// Остальные поля не тронуты
	assert.Equal(t, domain.DefaultMinLeadMinutes, resp.MinLeadMinutes)

	require.NotNil(t, repo.updated)
	assert.Equal(t, 45, repo.updated.SlotLengthMinutes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		SlotLengthMinutes: ptr.Ptr(45),
	})
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{
			name: "slot length below minimum",
			req:  &models.UpdateSettingsRequest{SlotLengthMinutes: ptr.Ptr(3)},
		},
		{
			name: "negative buffer",
			req:  &models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(-5)},
		},
		{
			name: "zero max persons",
			req:  &models.UpdateSettingsRequest{MaxPersons: ptr.Ptr(0)},
		},
		{
			name: "unknown pricing type",
			req:  &models.UpdateSettingsRequest{GroupPricingType: ptr.Ptr("per_hour")},
		},
		{
			name: "negative pricing amount",
			req:  &models.UpdateSettingsRequest{GroupPricingAmount: ptr.Ptr(-1.0)},
		},
		{
			name: "zero max recurrences",
			req:  &models.UpdateSettingsRequest{MaxRecurrences: ptr.Ptr(0)},
		},
		{
			name: "unknown timezone",
			req:  &models.UpdateSettingsRequest{BusinessTimezone: ptr.Ptr("Mars/Olympus")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSettingsRepo{settings: storedSettings()}
			svc := NewService(repo, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			// Невалидное обновление не должно попасть в репозиторий
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdate_SlotGenerationCanBeDisabled(t *testing.T) {
	repo := &fakeSettingsRepo{settings: storedSettings()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		SlotLengthMinutes: ptr.Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SlotLengthMinutes)
}
