package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/tools/output"
)

func TestNewServerContext(t *testing.T) {
	loader := newTestLoader(t, "test-context")

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "missing loader",
			opts:    []Option{WithLogger(newTestLogger())},
			wantErr: ErrMissingLoader,
		},
		{
			name:    "nil loader",
			opts:    []Option{WithLoader(nil)},
			wantErr: ErrMissingLoader,
		},
		{
			name:    "nil logger",
			opts:    []Option{WithLoader(loader), WithLogger(nil)},
			wantErr: ErrMissingLogger,
		},
		{
			name:    "nil config",
			opts:    []Option{WithLoader(loader), WithConfig(nil)},
			wantErr: ErrMissingConfig,
		},
		{
			name: "valid",
			opts: []Option{WithLoader(loader), WithLogger(newTestLogger())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewServerContext(context.Background(), tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sc.Selector())
			assert.NotNil(t, sc.Views())
			assert.Same(t, loader.Store(), sc.Store())
			assert.Equal(t, catalog.DefaultCategories(), sc.Categories())
			assert.Nil(t, sc.Metrics())
			assert.False(t, sc.InClusterMode())
		})
	}
}

func TestNewServerContext_Options(t *testing.T) {
	categories := catalog.Categories{{Name: "Apps", Kinds: []catalog.Kind{"deployments"}}}

	sc, err := NewServerContext(context.Background(),
		WithLoader(newTestLoader(t, "in-cluster")),
		WithServerName("explorer-staging"),
		WithCategories(categories),
	)
	require.NoError(t, err)

	assert.Equal(t, "explorer-staging", sc.Config().ServerName)
	assert.Equal(t, categories, sc.Categories())
	assert.True(t, sc.InClusterMode())
}

func TestServerContext_Select(t *testing.T) {
	sc := newTestServerContext(t, true)

	sel, c, err := sc.Select(context.Background(), "tab-1", "Network", "")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, catalog.ModeCategory, sel.Mode)
	assert.Equal(t, []catalog.Kind{"services"}, sel.Kinds())
	assert.Equal(t, 1, sc.Views().Len())
}

func TestServerContext_SelectNotLoaded(t *testing.T) {
	sc := newTestServerContext(t, false)

	_, _, err := sc.Select(context.Background(), "", "Workloads", "")
	assert.ErrorIs(t, err, catalog.ErrNotLoaded)
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := newTestServerContext(t, false)
	sc.Views().Begin("tab-1")

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Equal(t, 0, sc.Views().Len())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}

	// Shutdown is idempotent.
	assert.NoError(t, sc.Shutdown())
}

func TestConfig_Clone(t *testing.T) {
	original := NewDefaultConfig()
	original.ViewSessionTTL = time.Minute

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	clone.AllowedOrigins[0] = "https://dashboard.example.com"
	clone.Output.ExcludedFields = append(clone.Output.ExcludedFields, "status")

	assert.Equal(t, DefaultAllowedOrigin, original.AllowedOrigins[0])
	assert.Equal(t, output.DefaultExcludedFields(), original.Output.ExcludedFields)

	var nilConfig *Config
	assert.Nil(t, nilConfig.Clone())
}
