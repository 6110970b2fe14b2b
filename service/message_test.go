package service

import (
	"context"
	"testing"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMessage_Validation(t *testing.T) {
	repo, _ := setupStore(t)
	svc := NewMessageService(repo, nopLogger())
	ctx := context.Background()

	for name, in := range map[string]MessageInput{
		"name":        {Email: "a@example.com", Message: "hi"},
		"email":       {Name: "A", Message: "hi"},
		"message":     {Name: "A", Email: "a@example.com"},
		"email shape": {Name: "A", Email: "not-an-email", Message: "hi"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SubmitMessage(ctx, in)
			assert.ErrorIs(t, err, e.ErrValidation)
		})
	}
}

func TestMessageInbox(t *testing.T) {
	repo, _ := setupStore(t)
	svc := NewMessageService(repo, nopLogger())
	ctx := context.Background()

	first, err := svc.SubmitMessage(ctx, MessageInput{Name: "Nur", Email: "NUR@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "nur@example.com", first.Email)
	assert.False(t, first.IsRead)
	_, err = svc.SubmitMessage(ctx, MessageInput{Name: "Lee", Email: "lee@example.com", Subject: "Quote", Message: "Price?"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkMessageRead(ctx, first.ID))

	unread, total, err := svc.ListMessages(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, unread, 1)
	assert.Equal(t, "Lee", unread[0].Name)

	require.NoError(t, svc.DeleteMessage(ctx, first.ID))
	_, total, err = svc.ListMessages(ctx, false, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	assert.ErrorIs(t, svc.MarkMessageRead(ctx, 9999), e.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteMessage(ctx, first.ID), e.ErrNotFound)
}

func TestCatalogService(t *testing.T) {
	repo, _ := setupStore(t)
	svc := NewCatalogService(repo)
	ctx := context.Background()

	offerings, err := svc.ListOfferingCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, offerings, 5)

	tiers, err := svc.ListPlatformFeeTiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, "Tier 1", tiers[0].TierName)
	assert.True(t, d("15").Equal(tiers[0].PlatformFeePercentage))
}
