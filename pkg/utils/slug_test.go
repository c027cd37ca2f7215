package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "hello-world", GenerateSlug("Hello World"))
	assert.Equal(t, "les-contes-du-soir", GenerateSlug("  Les Contes du Soir  "))
	assert.Equal(t, "top-10-recettes", GenerateSlug("Top 10 Recettes!"))
	assert.Equal(t, "untitled", GenerateSlug("???"))
	assert.Equal(t, "untitled", GenerateSlug(""))
}

func TestUniqueSlugNoCollision(t *testing.T) {
	slug, err := UniqueSlug("Fresh Title", func(s string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-title", slug)
}

func TestUniqueSlugSuffixesOnCollision(t *testing.T) {
	taken := map[string]bool{
		"popular-title":   true,
		"popular-title-2": true,
	}
	slug, err := UniqueSlug("Popular Title", func(s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "popular-title-3", slug)
}

func TestUniqueSlugPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug("Anything", func(s string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
