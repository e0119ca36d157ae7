package db

import (
	"fmt"
	"strings"
	"testing"

	"bookkeeper/internal/domain"
	"bookkeeper/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gdb))
	return gdb
}

func TestEnsureDefaultAdmin_SeedsEmptyStore(t *testing.T) {
	gdb := newTestDB(t)

	require.NoError(t, EnsureDefaultAdmin(gdb, "admin", "admin123"))

	var admin domain.User
	require.NoError(t, gdb.Where("username = ?", "admin").First(&admin).Error)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.NotEqual(t, "admin123", admin.Password, "password must be stored hashed")
	require.True(t, utils.CheckPassword(admin.Password, "admin123"))
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	gdb := newTestDB(t)

	require.NoError(t, EnsureDefaultAdmin(gdb, "admin", "admin123"))
	require.NoError(t, EnsureDefaultAdmin(gdb, "admin", "admin123"))

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestEnsureDefaultAdmin_SkipsWhenUsersExist(t *testing.T) {
	gdb := newTestDB(t)

	hash, err := utils.HashPassword("pw123456")
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&domain.User{Username: "bob", Password: hash, Role: domain.RoleAccountant}).Error)

	require.NoError(t, EnsureDefaultAdmin(gdb, "admin", "admin123"))

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Where("username = ?", "admin").Count(&count).Error)
	require.EqualValues(t, 0, count, "no admin must be seeded when any user exists")
}
