package database

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaoscampaign/tracker/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	glogger "gorm.io/gorm/logger"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(zerolog.Nop())
	require.NoError(t, m.ConnectSqlite(filepath.Join(t.TempDir(), "campaign.db")))
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSetup_CreatesTablesAndInfo(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Setup())

	assert.True(t, m.DB.Migrator().HasTable(&model.Slot{}))
	assert.True(t, m.DB.Migrator().HasTable(&model.StoreInfo{}))

	var info model.StoreInfo
	require.NoError(t, m.DB.First(&info).Error)
	assert.Equal(t, "campaignctl", info.Application)
	assert.Equal(t, uint(model.CurrentSchema), info.Schema)

	// running again does not duplicate the info row
	require.NoError(t, m.Setup())
	var count int64
	require.NoError(t, m.DB.Model(&model.StoreInfo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetup_NotConnected(t *testing.T) {
	m := NewManager(zerolog.Nop())
	assert.Error(t, m.Setup())
	assert.Error(t, m.Backup("x.db"))
	assert.NoError(t, m.Close())
}

func TestBackup(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Setup())
	require.NoError(t, m.DB.Create(&model.Slot{Key: "units", Payload: datatypes.JSON(`[]`)}).Error)

	backupPath := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, os.WriteFile(backupPath, []byte("stale"), 0644))

	require.NoError(t, m.Backup(backupPath))

	copyMgr := NewManager(zerolog.Nop())
	require.NoError(t, copyMgr.ConnectSqlite(backupPath))
	defer copyMgr.Close()

	var slot model.Slot
	require.NoError(t, copyMgr.DB.First(&slot, "key = ?", "units").Error)
	assert.JSONEq(t, `[]`, string(slot.Payload))
}

func TestVacuumInto_EmptyPath(t *testing.T) {
	m := newTestManager(t)
	err := VacuumInto(m.DB, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not set")
}

func TestGormLogger_LogsErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	m := NewManager(log)
	require.NoError(t, m.ConnectSqlite(filepath.Join(t.TempDir(), "campaign.db")))
	defer m.Close()

	err := m.DB.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "gorm trace error")
	assert.Contains(t, buf.String(), "no_such_table")
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	l := NewGormLogger(zerolog.Nop(), slowThreshold).(*GormLogger)
	silent := l.LogMode(glogger.Silent).(*GormLogger)

	assert.NotSame(t, l, silent)
	assert.NotEqual(t, l.level, silent.level)
}
