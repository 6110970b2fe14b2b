package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupStore opens a private in-memory database with the seeded catalog.
func setupStore(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db))
	require.NoError(t, model.Seed(db))
	return repository.New(db), db
}

type testDeps struct {
	repo *repository.Repository
	db   *gorm.DB
}

type publishedEvent struct {
	Type    events.EventType
	Key     string
	Payload interface{}
}

// recordingPublisher keeps every produced event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Produce(eventType events.EventType, key string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Key: key, Payload: payload})
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func nopLogger() *zap.Logger { return zap.NewNop() }

func boolPtr(b bool) *bool { return &b }

func uintPtr(v uint) *uint { return &v }
