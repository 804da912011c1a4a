package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/filecms/internal/models"
)

func TestMedia_UploadAndList(t *testing.T) {
	repo := NewFileMediaRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Upload(ctx, "logo.png", strings.NewReader("png-bytes")))
	require.NoError(t, repo.Upload(ctx, "paper.pdf", strings.NewReader("%PDF")))

	assets, err := repo.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.MediaAsset{
		{Name: "logo.png", Size: 9},
		{Name: "paper.pdf", Size: 4},
	}, assets)
}

func TestMedia_UploadOverwrites(t *testing.T) {
	repo := NewFileMediaRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Upload(ctx, "disk.img", strings.NewReader("first")))
	require.NoError(t, repo.Upload(ctx, "disk.img", strings.NewReader("second")))

	got, err := repo.Read(ctx, "disk.img")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestMedia_UploadInvalidExtension(t *testing.T) {
	repo := NewFileMediaRepository(t.TempDir())
	ctx := context.Background()

	err := repo.Upload(ctx, "script.sh", strings.NewReader("#!/bin/sh"))
	assert.ErrorIs(t, err, models.ErrInvalidExtension)

	assets, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, assets)
	assert.False(t, repo.Exists(ctx, "script.sh"))
}

func TestMedia_DeleteAndMissing(t *testing.T) {
	repo := NewFileMediaRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Upload(ctx, "logo.png", strings.NewReader("x")))
	require.NoError(t, repo.Delete(ctx, "logo.png"))

	assert.ErrorIs(t, repo.Delete(ctx, "logo.png"), models.ErrNotFound)
	_, err := repo.Read(ctx, "logo.png")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
