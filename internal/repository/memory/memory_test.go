package memory

import (
	"context"
	"testing"

	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCatalog() *ServiceRepository {
	return NewServiceRepository(
		model.Service{ServiceID: "01", Title: "Full Car Repair", Price: 200, Img: "repair.jpg", Description: "everything"},
		model.Service{ServiceID: "02", Title: "Engine Oil Change", Price: 20},
		model.Service{ServiceID: "03", Title: "Battery Charge", Price: 120},
		model.Service{ServiceID: "04", Title: "Engine Repair", Price: 150},
	)
}

func titles(services []model.Service) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.Title)
	}
	return out
}

func TestListServices_SearchAndSort(t *testing.T) {
	repo := seedCatalog()
	ctx := context.Background()

	asc, err := repo.ListServices(ctx, model.ServiceQuery{Search: "ENGINE", Sort: model.SortAscending})
	require.NoError(t, err)
	assert.Equal(t, []string{"Engine Oil Change", "Engine Repair"}, titles(asc))

	desc, err := repo.ListServices(ctx, model.ServiceQuery{Sort: model.SortDescending})
	require.NoError(t, err)
	assert.Equal(t, []string{"Full Car Repair", "Engine Repair", "Battery Charge", "Engine Oil Change"}, titles(desc))
}

func TestListServices_NoMatchIsEmpty(t *testing.T) {
	got, err := seedCatalog().ListServices(context.Background(), model.ServiceQuery{Search: "paint"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetService_Projection(t *testing.T) {
	repo := seedCatalog()
	first := repo.items[0]

	got, err := repo.GetService(context.Background(), first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Full Car Repair", got.Title)
	assert.Equal(t, "repair.jpg", got.Img)
	assert.Empty(t, got.Description)

	missing, err := repo.GetService(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrders_Lifecycle(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	a := &model.Order{Email: "a@x.com", Status: "pending"}
	b := &model.Order{Email: "b@x.com"}
	require.NoError(t, repo.CreateOrder(ctx, a))
	require.NoError(t, repo.CreateOrder(ctx, b))
	assert.False(t, a.ID.IsZero())

	mine, err := repo.ListOrders(ctx, model.OrderQuery{Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := repo.ListOrders(ctx, model.OrderQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upd, err := repo.UpdateOrderStatus(ctx, a.ID, "confirm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	same, err := repo.UpdateOrderStatus(ctx, a.ID, "confirm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), same.MatchedCount)
	assert.Equal(t, int64(0), same.ModifiedCount)

	none, err := repo.UpdateOrderStatus(ctx, primitive.NewObjectID(), "x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.MatchedCount)
	assert.Nil(t, none.UpsertedID)

	del, err := repo.DeleteOrder(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	again, err := repo.DeleteOrder(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.DeletedCount)
}
