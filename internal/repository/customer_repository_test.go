package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transferbff/internal/model"
)

func TestCustomerRepository(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	customer := &model.Customer{Name: "Aysel", Surname: "Mammadova", Email: "aysel@example.com"}
	require.NoError(t, repo.Create(ctx, customer))
	assert.Positive(t, customer.ID)

	byEmail, err := repo.FindByEmail(ctx, "aysel@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)

	exists, err := repo.ExistsByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, customer.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)

	customer.Surname = "Aliyeva"
	require.NoError(t, repo.Update(ctx, customer))
	byID, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aliyeva", byID.Surname)

	duplicate := &model.Customer{Name: "Other", Surname: "Person", Email: "aysel@example.com"}
	assert.Error(t, repo.Create(ctx, duplicate))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.FindByID(ctx, 12345)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
