package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

func seedLogs(t *testing.T, st *Storage) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	u := newUser("logs@example.com")
	require.NoError(t, st.SaveUser(ctx, u))

	day := func(d int) time.Time { return time.Date(2024, 5, d, 10, 0, 0, 0, time.UTC) }

	logs := []models.DiseaseLog{
		{CropName: "Rice", DiseaseName: "Blast", Severity: models.SeverityHigh, Region: "Karnataka", DiagnosisDate: day(10)},
		{CropName: "Wheat", DiseaseName: "Rust", Severity: models.SeverityMedium, Region: "Tamil Nadu", DiagnosisDate: day(12)},
		{CropName: "Cotton", DiseaseName: "Boll Rot", Severity: models.SeverityLow, Region: "Karnataka", DiagnosisDate: day(9)},
		{CropName: "Tomato", DiseaseName: "Early Blight", Severity: models.SeverityHigh, Region: "Tamil Nadu", DiagnosisDate: day(13)},
		{CropName: "Rice", DiseaseName: "Sheath Blight", Severity: models.SeverityMedium, Region: "Tamil Nadu", DiagnosisDate: day(11)},
	}

	for i := range logs {
		logs[i].ID = uuid.New()
		logs[i].UserID = u.ID
		logs[i].CreatedAt = time.Now().UTC()
		require.NoError(t, st.SaveDiseaseLog(ctx, &logs[i]))
	}

	return u.ID
}

func TestIntegration_DiseaseLogs_Filters(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	seedLogs(t, st)
	ctx := context.Background()

	all, err := st.DiseaseLogs(ctx, models.DiseaseLogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "Tomato", all[0].CropName, "сортировка от новых к старым")

	rice, err := st.DiseaseLogs(ctx, models.DiseaseLogFilter{Crop: "rice"})
	require.NoError(t, err)
	require.Len(t, rice, 2)

	riceTN, err := st.DiseaseLogs(ctx, models.DiseaseLogFilter{Crop: "RICE", Region: "tamil nadu"})
	require.NoError(t, err)
	require.Len(t, riceTN, 1)
	require.Equal(t, "Sheath Blight", riceTN[0].DiseaseName)
	require.Equal(t, models.SeverityMedium, riceTN[0].Severity)

	// Границы включительные.
	ranged, err := st.DiseaseLogs(ctx, models.DiseaseLogFilter{
		From: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, ranged, 3)

	none, err := st.DiseaseLogs(ctx, models.DiseaseLogFilter{Crop: "Banana"})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}
