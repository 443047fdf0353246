package aggregate

import (
	"testing"
	"time"

	"plateful/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(db, rdb), mock, mr
}

func TestStore_RecordOrder(t *testing.T) {
	store, _, mr := setupTestStore(t)

	evt := domain.OrderEvent{
		Type:         domain.EventOrderCreated,
		OrderID:      7,
		RestaurantID: 10,
		TotalAmount:  2550,
		PlatformFee:  383,
		Timestamp:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.RecordOrder(evt))
	require.NoError(t, store.RecordOrder(evt))

	key := "revenue:daily:2026-03-14:10"
	assert.Equal(t, "2", mr.HGet(key, "orders_count"))
	assert.Equal(t, "5100", mr.HGet(key, "revenue_total"))
	assert.Equal(t, "766", mr.HGet(key, "platform_fee"))
	assert.Greater(t, mr.TTL(key), time.Duration(0))
}

func TestStore_RefreshLeaderboard(t *testing.T) {
	store, mock, mr := setupTestStore(t)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total_amount\\), 0\\)").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5100))

	require.NoError(t, store.RefreshLeaderboard(10))

	score, err := mr.ZScore("revenue:leaderboard", "10")
	require.NoError(t, err)
	assert.Equal(t, float64(5100), score)
}
