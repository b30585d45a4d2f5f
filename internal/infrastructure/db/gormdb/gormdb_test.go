package gormdb

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestionstock/product-api/internal/core/domain"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(Opts{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(initTestDB(t))

	p := &domain.Product{Name: "Test product", Description: "Test description", Category: "Placeholder", Quantity: 10, Price: 10.5}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, *p, *got)

	byName, err := repo.FindByName(ctx, "Test product")
	require.NoError(t, err)
	require.Equal(t, p.ID, byName.ID)

	p.Name = "Modified"
	require.NoError(t, repo.Update(ctx, p))
	got, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Modified", got.Name)
	require.Equal(t, 10, got.Quantity)

	require.NoError(t, repo.Update(ctx, p), "unchanged update must succeed")

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(initTestDB(t))

	require.ErrorIs(t, repo.Update(ctx, &domain.Product{ID: 77, Name: "ghost"}), domain.ErrProductNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 77), domain.ErrProductNotFound)

	_, err := repo.FindByName(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestProductRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(initTestDB(t))

	for _, p := range []domain.Product{
		{Name: "Vis", Price: 5, Quantity: 100},
		{Name: "Clou", Price: 10, Quantity: 3},
		{Name: "Scie", Price: 20, Quantity: 7},
	} {
		p := p
		require.NoError(t, repo.Create(ctx, &p))
	}

	byPrice, err := repo.FilterByPrice(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, byPrice, 2)
	require.Equal(t, "Vis", byPrice[0].Name)
	require.Equal(t, "Clou", byPrice[1].Name)

	unbounded, err := repo.FilterByPrice(ctx, 0, math.MaxFloat64)
	require.NoError(t, err)
	require.Len(t, unbounded, 3)

	byQty, err := repo.FilterByQuantity(ctx, 3, 7)
	require.NoError(t, err)
	require.Len(t, byQty, 2)

	byQty, err = repo.FilterByQuantity(ctx, 0, math.MaxInt)
	require.NoError(t, err)
	require.Len(t, byQty, 3)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(initTestDB(t))

	created, err := repo.Create(ctx, &domain.User{
		Username:     "admin",
		PasswordHash: "hash",
		Role:         domain.RoleManager,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "x", Role: domain.RoleEmployee})
	require.ErrorIs(t, err, domain.ErrUserExists)

	found, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "hash", found.PasswordHash)
	require.Equal(t, domain.RoleManager, found.Role)

	_, err = repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestBookRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(initTestDB(t))

	b := &domain.Book{ID: "8a2e0f4c-0000-4000-8000-000000000001", Title: "Germinal", Author: "Zola"}
	require.NoError(t, repo.Create(ctx, b))

	b.Author = "Émile Zola"
	require.NoError(t, repo.Update(ctx, b))
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, *b, *got)

	require.ErrorIs(t, repo.Update(ctx, &domain.Book{ID: "missing", Title: "abc", Author: "abc"}), domain.ErrBookNotFound)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)

	require.NoError(t, repo.Delete(ctx, b.ID))
	require.ErrorIs(t, repo.Delete(ctx, b.ID), domain.ErrBookNotFound)
}

func TestHealthCheck(t *testing.T) {
	db := initTestDB(t)
	check := HealthCheck(db)
	require.NoError(t, check(context.Background()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	require.Error(t, check(context.Background()))
}
