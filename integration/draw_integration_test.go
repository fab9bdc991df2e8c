package gacha_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunagu-ab/tunagatya-app/internal/draw"
)

func TestDraw_Integration_Settlement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	userID, _ := createTestUser(t, db, "drawer@test.com", "Drawer")
	giveBalance(t, db, userID, 500)

	gachaID := createTestGacha(t, db, "Test Box", 500, 10)
	itemID := createTestItem(t, db, "Prize", 100)
	addPoolEntry(t, db, gachaID, itemID, 1, 10)

	repo := draw.NewRepository(db)
	res, err := repo.ExecuteDraw(context.Background(), userID, gachaID, draw.NewWeightedSelector())
	require.NoError(t, err)

	// The whole settlement lands together: wallet to zero, stock down one,
	// item minted, ledger row written.
	assert.Equal(t, 0, res.NewBalance)
	assert.Equal(t, 9, res.RemainingStock)
	assert.Equal(t, itemID, res.Item.ItemID)
	assert.Equal(t, 0, currentBalance(t, db, userID))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM user_items WHERE user_id = $1`, userID))
	assert.Equal(t, 1, count)

	var ledger int
	require.NoError(t, db.Get(&ledger,
		`SELECT COUNT(*) FROM point_transactions WHERE user_id = $1 AND type = 'draw_payment'`, userID))
	assert.Equal(t, 1, ledger)
}

func TestDraw_Integration_SecondDrawOutOfStock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	userID, _ := createTestUser(t, db, "lastone@test.com", "Last One")
	giveBalance(t, db, userID, 2000)

	gachaID := createTestGacha(t, db, "Tiny Box", 500, 1)
	itemID := createTestItem(t, db, "Only Prize", 100)
	addPoolEntry(t, db, gachaID, itemID, 1, 1)

	repo := draw.NewRepository(db)
	selector := draw.NewWeightedSelector()

	_, err := repo.ExecuteDraw(context.Background(), userID, gachaID, selector)
	require.NoError(t, err)

	_, err = repo.ExecuteDraw(context.Background(), userID, gachaID, selector)
	require.ErrorIs(t, err, draw.ErrOutOfStock)

	// Second attempt must not touch the wallet.
	assert.Equal(t, 1500, currentBalance(t, db, userID))
}

func TestDraw_Integration_InsufficientPoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	userID, _ := createTestUser(t, db, "broke@test.com", "Broke")
	giveBalance(t, db, userID, 499)

	gachaID := createTestGacha(t, db, "Pricey Box", 500, 10)
	itemID := createTestItem(t, db, "Prize", 100)
	addPoolEntry(t, db, gachaID, itemID, 1, 10)

	repo := draw.NewRepository(db)
	_, err := repo.ExecuteDraw(context.Background(), userID, gachaID, draw.NewWeightedSelector())
	require.ErrorIs(t, err, draw.ErrInsufficientPoints)

	assert.Equal(t, 499, currentBalance(t, db, userID))
}

// With stock N and more than N concurrent draws, exactly N succeed and the
// rest fail with out-of-stock. Stock never goes negative.
func TestDraw_Integration_ConcurrentDraws(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	const stock = 3
	const attempts = 8

	gachaID := createTestGacha(t, db, "Contested Box", 100, stock)
	itemID := createTestItem(t, db, "Prize", 10)
	addPoolEntry(t, db, gachaID, itemID, 1, stock)

	userIDs := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		userIDs[i], _ = createTestUser(t, db, fmt.Sprintf("racer%d@test.com", i), "Racer")
		giveBalance(t, db, userIDs[i], 1000)
	}

	repo := draw.NewRepository(db)
	selector := draw.NewWeightedSelector()

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.ExecuteDraw(context.Background(), userIDs[i], gachaID, selector)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, draw.ErrOutOfStock)
		}
	}
	assert.Equal(t, stock, succeeded)

	var remaining int
	require.NoError(t, db.Get(&remaining, `SELECT current_stock FROM gachas WHERE id = $1`, gachaID))
	assert.Equal(t, 0, remaining)

	var minted int
	require.NoError(t, db.Get(&minted, `SELECT COUNT(*) FROM user_items WHERE gacha_id = $1`, gachaID))
	assert.Equal(t, stock, minted)
}
