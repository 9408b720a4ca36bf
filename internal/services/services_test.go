package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mestizo/crm-service/internal/db"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	return store.New(gdb)
}

func seedCustomer(t *testing.T, s *store.Store) models.Customer {
	t.Helper()
	c := models.Customer{Type: models.CustomerIndividual, Name: "Ana Torres", Phone: "555-0101"}
	require.NoError(t, s.CreateCustomer(context.Background(), &c))
	return c
}
