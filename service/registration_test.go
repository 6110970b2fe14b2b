package service

import (
	"context"
	"sync"
	"testing"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationService(t *testing.T) (*RegistrationService, *recordingPublisher, *testDeps) {
	t.Helper()
	repo, db := setupStore(t)
	pub := &recordingPublisher{}
	return NewRegistrationService(repo, pub, nopLogger()), pub, &testDeps{repo: repo, db: db}
}

func registration(email string) RegistrationInput {
	return RegistrationInput{
		Email:          email,
		CompanyName:    "Maju Jaya Sdn Bhd",
		CompanyType:    "SDN_BHD",
		CompanyLogoURL: "https://cdn.example.com/logo.png",
	}
}

func TestRegisterCompany_ProvisionsUser(t *testing.T) {
	svc, pub, deps := newRegistrationService(t)
	ctx := context.Background()

	reg, err := svc.RegisterCompany(ctx, registration(" Owner@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationPending, reg.Status)

	var user model.User
	require.NoError(t, deps.db.Where("email = ?", "owner@example.com").First(&user).Error)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "Maju Jaya Sdn Bhd", user.CompanyName)
	assert.Equal(t, "https://cdn.example.com/logo.png", user.CompanyLogoURL)
	assert.Equal(t, user.ID, reg.UserID)

	assert.Equal(t, []events.EventType{events.CompanyRegistered}, pub.types())
}

func TestRegisterCompany_LimitReached(t *testing.T) {
	svc, _, _ := newRegistrationService(t)
	ctx := context.Background()

	first, err := svc.RegisterCompany(ctx, registration("owner@example.com"))
	require.NoError(t, err)

	_, err = svc.RegisterCompany(ctx, registration("owner@example.com"))
	assert.ErrorIs(t, err, e.ErrLimitReached)
	assert.ErrorIs(t, err, e.ErrConstraint)

	// rejection does not free the slot
	_, err = svc.SetRegistrationStatus(ctx, first.ID, model.RegistrationRejected)
	require.NoError(t, err)
	_, err = svc.RegisterCompany(ctx, registration("owner@example.com"))
	assert.ErrorIs(t, err, e.ErrLimitReached)

	regs, err := svc.ListRegistrations(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, model.RegistrationRejected, regs[0].Status)
}

func TestRegisterCompany_SoftDeletedStillCounts(t *testing.T) {
	svc, _, deps := newRegistrationService(t)
	ctx := context.Background()

	first, err := svc.RegisterCompany(ctx, registration("owner@example.com"))
	require.NoError(t, err)
	require.NoError(t, deps.db.Delete(&model.CompanyRegistration{}, first.ID).Error)

	_, err = svc.RegisterCompany(ctx, registration("owner@example.com"))
	assert.ErrorIs(t, err, e.ErrLimitReached)
}

func TestRegisterCompany_Concurrent(t *testing.T) {
	svc, _, deps := newRegistrationService(t)
	ctx := context.Background()
	const n = 5

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegisterCompany(ctx, registration("race@example.com"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, e.ErrLimitReached)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, deps.db.Unscoped().Model(&model.CompanyRegistration{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterCompany_Validation(t *testing.T) {
	svc, _, _ := newRegistrationService(t)
	ctx := context.Background()

	for name, in := range map[string]RegistrationInput{
		"email":        {CompanyName: "A", CompanyType: "B"},
		"company name": {Email: "a@example.com", CompanyType: "B"},
		"company type": {Email: "a@example.com", CompanyName: "A"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterCompany(ctx, in)
			assert.ErrorIs(t, err, e.ErrValidation)
		})
	}
}

func TestListRegistrations_UnknownEmail(t *testing.T) {
	svc, _, _ := newRegistrationService(t)

	regs, err := svc.ListRegistrations(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)

	_, err = svc.ListRegistrations(context.Background(), "")
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestSetRegistrationStatus(t *testing.T) {
	svc, _, _ := newRegistrationService(t)
	ctx := context.Background()

	reg, err := svc.RegisterCompany(ctx, registration("owner@example.com"))
	require.NoError(t, err)

	got, err := svc.SetRegistrationStatus(ctx, reg.ID, model.RegistrationApproved)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationApproved, got.Status)

	_, err = svc.SetRegistrationStatus(ctx, reg.ID, "DONE")
	assert.ErrorIs(t, err, e.ErrInvalidStatus)

	_, err = svc.SetRegistrationStatus(ctx, 9999, model.RegistrationApproved)
	assert.ErrorIs(t, err, e.ErrNotFound)
}
