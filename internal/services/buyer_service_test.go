package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyerService_CreateAndGet(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	in := buyerInput("Asha Verma", "9876543210")
	in.Email = "asha@example.com"
	in.Tags = []string{"a", "b"}

	created, err := svc.Create("alice", in)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "alice", created.OwnerID)
	assert.Equal(t, models.StatusNew, created.Status)

	got, err := svc.Get("alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Tags{"a", "b"}, got.Tags)
	require.NotNil(t, got.Email)
	assert.Equal(t, "asha@example.com", *got.Email)
}

func TestBuyerService_OwnershipIsolation(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	created, err := svc.Create("alice", buyerInput("Asha Verma", "9876543210"))
	require.NoError(t, err)

	_, err = svc.Get("bob", created.ID)
	assert.ErrorIs(t, err, ErrBuyerNotFound)

	_, err = svc.Update("bob", created.ID, validation.BuyerUpdateInput{Status: ptr("Dropped")})
	assert.ErrorIs(t, err, ErrBuyerNotFound)

	assert.ErrorIs(t, svc.Delete("bob", created.ID), ErrBuyerNotFound)

	_, err = svc.History("bob", created.ID)
	assert.ErrorIs(t, err, ErrBuyerNotFound)

	got, err := svc.Get("alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)
}

func TestBuyerService_Update(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	created, err := svc.Create("alice", buyerInput("Asha Verma", "9876543210"))
	require.NoError(t, err)

	tags := []string{"hot", "callback"}
	updated, err := svc.Update("alice", created.ID, validation.BuyerUpdateInput{
		Status:    ptr("Qualified"),
		BudgetMax: ptr(500000),
		Tags:      &tags,
	})
	require.NoError(t, err)

	assert.Equal(t, "Qualified", updated.Status)
	require.NotNil(t, updated.BudgetMax)
	assert.Equal(t, 500000, *updated.BudgetMax)
	assert.Equal(t, models.Tags{"hot", "callback"}, updated.Tags)
	assert.Equal(t, "Asha Verma", updated.FullName, "fields not supplied stay untouched")
}

func TestBuyerService_UpdateMissing(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	_, err := svc.Update("alice", uuid.New(), validation.BuyerUpdateInput{Status: ptr("Dropped")})
	assert.ErrorIs(t, err, ErrBuyerNotFound)
}

func TestBuyerService_EmptyUpdateTouchesRecord(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	created, err := svc.Create("alice", buyerInput("Asha Verma", "9876543210"))
	require.NoError(t, err)

	updated, err := svc.Update("alice", created.ID, validation.BuyerUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
}

func TestBuyerService_Delete(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	created, err := svc.Create("alice", buyerInput("Asha Verma", "9876543210"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete("alice", created.ID))

	_, err = svc.Get("alice", created.ID)
	assert.ErrorIs(t, err, ErrBuyerNotFound)
	assert.ErrorIs(t, svc.Delete("alice", created.ID), ErrBuyerNotFound)
}

func TestBuyerService_HistoryRecordsDiffs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBuyerService(db, testConfig())

	created, err := svc.Create("alice", buyerInput("Asha Verma", "9876543210"))
	require.NoError(t, err)

	_, err = svc.Update("alice", created.ID, validation.BuyerUpdateInput{Status: ptr("Contacted")})
	require.NoError(t, err)

	history, err := svc.History("alice", created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	var changes map[string]models.FieldChange
	require.NoError(t, json.Unmarshal(history[0].Diff, &changes))
	if _, ok := changes["status"]; !ok {
		// same-second timestamps: fall back to the other row
		require.NoError(t, json.Unmarshal(history[1].Diff, &changes))
	}
	require.Contains(t, changes, "status")
	assert.Equal(t, "New", changes["status"].Old)
	assert.Equal(t, "Contacted", changes["status"].New)
	assert.Equal(t, "alice", history[0].ChangedBy)

	require.NoError(t, svc.Delete("alice", created.ID))
	var count int64
	require.NoError(t, db.Model(&models.BuyerHistory{}).Where("buyer_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestBuyerService_ListPaginationAndFilters(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	for i := 0; i < 12; i++ {
		in := buyerInput(fmt.Sprintf("Lead %02d", i), fmt.Sprintf("98765432%02d", i))
		if i%3 == 0 {
			in.City = "Mohali"
		}
		_, err := svc.Create("alice", in)
		require.NoError(t, err)
	}
	_, err := svc.Create("bob", buyerInput("Someone Else", "9000000000"))
	require.NoError(t, err)

	page1, err := svc.List("alice", dto.BuyerFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page1.Buyers, 5)
	assert.Equal(t, int64(12), page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.Pages)

	page3, err := svc.List("alice", dto.BuyerFilter{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page3.Buyers, 2)

	mohali, err := svc.List("alice", dto.BuyerFilter{City: "Mohali"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), mohali.Pagination.Total)
	assert.Equal(t, 10, mohali.Pagination.Limit)

	byName, err := svc.List("alice", dto.BuyerFilter{Search: "lead 07"})
	require.NoError(t, err)
	require.Len(t, byName.Buyers, 1)
	assert.Equal(t, "Lead 07", byName.Buyers[0].FullName)

	byPhone, err := svc.List("alice", dto.BuyerFilter{Search: "9876543211"})
	require.NoError(t, err)
	assert.Len(t, byPhone.Buyers, 1)

	none, err := svc.List("alice", dto.BuyerFilter{Status: "Converted"})
	require.NoError(t, err)
	assert.Empty(t, none.Buyers)
	assert.Equal(t, 1, none.Pagination.Pages)
}

func TestBuyerService_ListClampsLimit(t *testing.T) {
	svc := NewBuyerService(setupTestDB(t), testConfig())

	res, err := svc.List("alice", dto.BuyerFilter{Page: -2, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 100, res.Pagination.Limit)
	assert.NotNil(t, res.Buyers)
}

func TestDiffSnapshots(t *testing.T) {
	before := map[string]interface{}{"status": "New", "tags": []string{}, "email": nil}
	after := map[string]interface{}{"status": "Visited", "tags": []string{}, "email": "x@y.z"}

	diff := diffSnapshots(before, after)
	assert.Len(t, diff, 2)
	assert.Equal(t, models.FieldChange{Old: "New", New: "Visited"}, diff["status"])
	assert.Equal(t, models.FieldChange{Old: nil, New: "x@y.z"}, diff["email"])

	created := diffSnapshots(nil, after)
	assert.Len(t, created, 3)
}
