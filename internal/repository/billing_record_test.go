package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func Test_billingRecordRepository_CreateOnce(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	billingRepo := repository.NewBillingRecordRepository()

	record := &entity.BillingRecord{
		Base:             entity.Base{ID: "billing1"},
		TeamID:           testutil.Team1.ID,
		VideoID:          testutil.Video1.VideoID,
		LanguageCode:     "fr",
		MinutesProcessed: 10,
		Source:           "collaboration",
		ProcessedDate:    time.Now(),
	}

	created, err := billingRepo.Create(ctx, record)
	require.NoError(t, err)
	require.True(t, created)

	// A second write for the same pair is ignored, even from another source.
	duplicate := &entity.BillingRecord{
		Base:             entity.Base{ID: "billing2"},
		TeamID:           testutil.Team1.ID,
		VideoID:          testutil.Video1.VideoID,
		LanguageCode:     "fr",
		MinutesProcessed: 99,
		Source:           "tasks",
		ProcessedDate:    time.Now(),
	}

	created, err = billingRepo.Create(ctx, duplicate)
	require.NoError(t, err)
	require.False(t, created)

	got, err := billingRepo.Get(ctx, testutil.Video1.VideoID, "fr")
	require.NoError(t, err)
	require.Equal(t, "billing1", got.ID)
	require.Equal(t, float64(10), got.MinutesProcessed)

	// Refreshing the original flag leaves the rest of the record alone.
	err = billingRepo.UpdateWasOriginal(ctx, testutil.Video1.VideoID, "fr", true)
	require.NoError(t, err)

	got, err = billingRepo.Get(ctx, testutil.Video1.VideoID, "fr")
	require.NoError(t, err)
	require.True(t, got.WasOriginal)
	require.Equal(t, float64(10), got.MinutesProcessed)

	// A different language on the same video bills separately.
	other := &entity.BillingRecord{
		Base:             entity.Base{ID: "billing3"},
		TeamID:           testutil.Team1.ID,
		VideoID:          testutil.Video1.VideoID,
		LanguageCode:     "en",
		MinutesProcessed: 10,
		WasOriginal:      true,
		Source:           "collaboration",
		ProcessedDate:    time.Now(),
	}

	created, err = billingRepo.Create(ctx, other)
	require.NoError(t, err)
	require.True(t, created)

	records, err := billingRepo.GetListByTeamID(ctx, testutil.Team1.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
