// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm--/fatcat/internal/platform/config"
	"github.com/mm--/fatcat/pkg/fcid"
)

/*
TestLoadDefaults verifies that a minimal environment produces a working
configuration.
*/
func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9411", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 500, cfg.MaxBatchSize)
	assert.Equal(t, int64(4194304), cfg.MaxBodyBytes)
}

/*
TestDefaultEditorMatchesBootstrapRow pins the default editor identifier to
the editor row the initial migration seeds. If these drift apart, every
unauthenticated mutation fails attribution lookup.
*/
func TestDefaultEditorMatchesBootstrapRow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	decoded, err := fcid.ToUUID(cfg.DefaultEditor)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-aaaa-000000000001"), decoded)
}

/*
TestLoadRequiresDatabaseURL verifies that the required database setting is
enforced at parse time.
*/
func TestLoadRequiresDatabaseURL(t *testing.T) {
	// t.Setenv registers the restore; the unset makes the variable truly
	// absent rather than empty.
	t.Setenv("DATABASE_URL", "placeholder")
	os.Unsetenv("DATABASE_URL")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoadRejectsNonPositiveBatchSize verifies the batch size guard.
*/
func TestLoadRejectsNonPositiveBatchSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/catalog")
	t.Setenv("MAX_BATCH_SIZE", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
