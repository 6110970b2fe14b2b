package config

import (
	"testing"

	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that LoadConfig returns a non-nil config and APPENV=test selects sqlite
func TestLoadConfigAndConnectDatabase_TestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.NotZero(t, cfg.AppPort)

	db, err := ConnectDatabase()
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.NoError(t, model.AutoMigrate(db))
}

func TestConnectDatabase_IsolatedPerCall(t *testing.T) {
	t.Setenv("APPENV", "test")

	first, err := ConnectDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(first) })
	second, err := ConnectDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(second) })

	require.NoError(t, model.AutoMigrate(first))
	require.NoError(t, first.Create(&model.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}).Error)

	assert.False(t, second.Migrator().HasTable(&model.ContactMessage{}))
}

func TestDialector_Drivers(t *testing.T) {
	t.Setenv("APPENV", "production")

	cases := []struct {
		driver string
		name   string
	}{
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"sqlite", "sqlite"},
	}
	for _, tc := range cases {
		t.Run(tc.driver, func(t *testing.T) {
			d, err := dialector(&Config{DBDriver: tc.driver, DBName: "file::memory:"})
			require.NoError(t, err)
			assert.Equal(t, tc.name, d.Name())
		})
	}

	_, err := dialector(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitList(" a:9092, ,b:9092 "))
	assert.Nil(t, splitList(""))
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}
