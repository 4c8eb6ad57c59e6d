package database

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sampleRow struct {
	ID   uint
	Name string
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open("file:gorm_logger?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormLogger(log.New(&buf, "", 0)),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sampleRow{}))

	var row sampleRow
	err = db.First(&row, "name = ?", "tidak-ada").Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())

	err = db.Table("tabel_hilang").First(&row).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "tabel_hilang")
}
