package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Casa Bonita #1", "casa-bonita-1"},
		{"Ático en Málaga", "atico-en-malaga"},
		{"  Piso   céntrico  ", "piso-centrico"},
		{"--- !!! ---", ""},
		{"Dúplex (2º piso)", "duplex-2-piso"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestGenerateSlugNoCollision(t *testing.T) {
	slug, err := GenerateSlug(context.Background(), "Casa Bonita #1",
		func(ctx context.Context, s string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "casa-bonita-1", slug)
}

func TestGenerateSlugCollisionAppendsSuffix(t *testing.T) {
	slug, err := GenerateSlug(context.Background(), "Casa Bonita #1",
		func(ctx context.Context, s string) (bool, error) { return true, nil })
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(slug, "casa-bonita-1-"), "got %q", slug)
	assert.NotEqual(t, "casa-bonita-1", slug)
}

func TestGenerateSlugEmptyTitle(t *testing.T) {
	slug, err := GenerateSlug(context.Background(), "???",
		func(ctx context.Context, s string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "listing", slug)
}
