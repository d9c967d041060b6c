package pgscan

import (
	"context"
	"testing"
	"time"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPGScan_RepoFlow(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "admin",
			"POSTGRES_PASSWORD": "admin",
			"POSTGRES_DB":       "scanbox_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://admin:admin@" + host + ":" + port.Port() + "/scanbox_test?sslmode=disable"
	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	// регистрация тега идемпотентна по uid
	linked := uint64(42)
	tag, err := st.RegisterTag(ctx, models.TagRegisterInput{UID: "04A1B2", Kind: models.KindLocation, LinkedEntityID: &linked})
	require.NoError(t, err)
	require.NotZero(t, tag.ID)
	require.Equal(t, models.TagStatusActive, tag.Status)

	again, err := st.RegisterTag(ctx, models.TagRegisterInput{UID: "04A1B2", Kind: models.KindItem})
	require.NoError(t, err)
	require.Equal(t, tag.ID, again.ID)
	require.Equal(t, models.KindLocation, again.Kind)

	got, err := st.GetTagByUID(ctx, "04A1B2")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.LinkedEntityID)
	require.EqualValues(t, 42, *got.LinkedEntityID)

	missing, err := st.GetTagByUID(ctx, "FF00")
	require.NoError(t, err)
	require.Nil(t, missing)

	// кандидаты
	_, err = st.db.Exec(ctx, `
INSERT INTO locations (name, description, created_at, updated_at)
VALUES ('Garage', 'main garage', now(), now())
`)
	require.NoError(t, err)
	_, err = st.db.Exec(ctx, `
INSERT INTO items (name, sku, quantity, created_at, updated_at)
VALUES ('Hammer', 'TL-9', 3, now(), now())
`)
	require.NoError(t, err)

	locations, err := st.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	require.Equal(t, "Garage", locations[0].Name)

	items, err := st.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "TL-9", items[0].SKU)

	// аудит
	scannedAt := time.Now().UTC()
	action := "default"
	err = st.InsertScanRecord(ctx, models.ScanRecordInput{
		TagID:       tag.ID,
		ScannedAt:   scannedAt,
		DeviceClass: "iOS",
		Action:      &action,
		Metadata:    map[string]string{"uid": "04A1B2", "kind": "location"},
	})
	require.NoError(t, err)

	recs, err := st.ListScanRecords(ctx, tag.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.WithinDuration(t, scannedAt, recs[0].ScannedAt, time.Second)
	require.Equal(t, "iOS", recs[0].DeviceClass)
	require.Equal(t, "default", *recs[0].Action)
	require.Equal(t, "04A1B2", recs[0].Metadata["uid"])
}
