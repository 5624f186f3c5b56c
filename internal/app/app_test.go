package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"

	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/app"
	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
	"github.com/conbuild/conbuild/internal/core/ports/mocks"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	validator *mocks.MockOptionValidator
	factory   *mocks.MockCacheFactory
	store     *mocks.MockBuildCache
	bundler   *mocks.MockBundler
	infoStore *mocks.MockBuildInfoStore
	hasher    *mocks.MockOutputHasher
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		validator: mocks.NewMockOptionValidator(ctrl),
		factory:   mocks.NewMockCacheFactory(ctrl),
		store:     mocks.NewMockBuildCache(ctrl),
		bundler:   mocks.NewMockBundler(ctrl),
		infoStore: mocks.NewMockBuildInfoStore(ctrl),
		hasher:    mocks.NewMockOutputHasher(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}
	f.app = app.New(
		f.loader, f.validator, f.factory, f.bundler,
		f.infoStore, f.hasher, f.telemetry, logger.New(),
	)
	return f
}

func buildConfig() *domain.BuildConfig {
	return &domain.BuildConfig{
		TagName:       "4.0.0",
		BundleCommand: []string{"sh", "-c", "true"},
		SourceDir:     ".conbuild/src",
		OutputDir:     "dist",
	}
}

func okResult() *domain.ValidationResult {
	return &domain.ValidationResult{}
}

func (f *fixture) expectPrepare(cfg *domain.BuildConfig) {
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.validator.EXPECT().Validate(cfg).Return(okResult())
}

func (f *fixture) expectRecordBuildInfo(fromCache bool) {
	f.hasher.EXPECT().HashTree("dist").Return("deadbeefdeadbeef", nil)
	f.infoStore.EXPECT().Put(gomock.Any()).DoAndReturn(func(info domain.BuildInfo) error {
		if info.FromCache != fromCache {
			return zerr.New("unexpected build info origin")
		}
		return nil
	})
}

func TestApp_Build_CacheHit(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.expectPrepare(cfg)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Exists().Return(true)

	f.telemetry.EXPECT().Record(gomock.Any(), "restore cached build 4.0.0").
		Return(context.Background(), f.vertex)
	f.store.EXPECT().Restore(gomock.Any(), "dist").Return(nil)
	f.vertex.EXPECT().Cached()
	f.vertex.EXPECT().Complete(nil)

	f.store.EXPECT().Key().Return("key1")
	f.expectRecordBuildInfo(true)

	// The bundler must never run on a cache hit.
	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{}))
}

func TestApp_Build_CacheMiss(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.expectPrepare(cfg)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Exists().Return(false)

	f.telemetry.EXPECT().Record(gomock.Any(), "bundle 4.0.0").
		Return(context.Background(), f.vertex)
	f.bundler.EXPECT().Bundle(gomock.Any(), cfg, ".").Return(nil)
	f.vertex.EXPECT().Complete(nil)

	f.store.EXPECT().Key().Return("key1")
	f.expectRecordBuildInfo(false)
	f.store.EXPECT().Store(gomock.Any(), "dist").Return(nil)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{}))
}

func TestApp_Build_StoreFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.expectPrepare(cfg)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Exists().Return(false)

	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		Return(context.Background(), f.vertex)
	f.bundler.EXPECT().Bundle(gomock.Any(), cfg, ".").Return(nil)
	f.vertex.EXPECT().Complete(nil)

	f.store.EXPECT().Key().Return("key1")
	f.expectRecordBuildInfo(false)
	f.store.EXPECT().Store(gomock.Any(), "dist").Return(zerr.New("disk full"))

	// A failed cache store must not fail the build that just completed.
	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{}))
}

func TestApp_Build_RestoreFailureFallsThroughToFullBuild(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.expectPrepare(cfg)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Exists().Return(true)

	restoreErr := zerr.New("corrupt entry")
	f.telemetry.EXPECT().Record(gomock.Any(), "restore cached build 4.0.0").
		Return(context.Background(), f.vertex)
	f.store.EXPECT().Restore(gomock.Any(), "dist").Return(restoreErr)
	f.vertex.EXPECT().Complete(restoreErr)

	// A failed restore is a cache miss: the full build runs.
	f.telemetry.EXPECT().Record(gomock.Any(), "bundle 4.0.0").
		Return(context.Background(), f.vertex)
	f.bundler.EXPECT().Bundle(gomock.Any(), cfg, ".").Return(nil)
	f.vertex.EXPECT().Complete(nil)

	f.store.EXPECT().Key().Return("key1")
	f.expectRecordBuildInfo(false)
	f.store.EXPECT().Store(gomock.Any(), "dist").Return(nil)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{}))
}

func TestApp_Build_BundlerFailure(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.expectPrepare(cfg)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Exists().Return(false)

	bundleErr := zerr.New("webpack exploded")
	f.telemetry.EXPECT().Record(gomock.Any(), "bundle 4.0.0").
		Return(context.Background(), f.vertex)
	f.bundler.EXPECT().Bundle(gomock.Any(), cfg, ".").Return(bundleErr)
	f.vertex.EXPECT().Complete(bundleErr)

	// Nothing is recorded or cached for a failed build.
	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, bundleErr)
}

func TestApp_Build_InvalidOptions(t *testing.T) {
	f := newFixture(t)
	cfg := &domain.BuildConfig{OutputDir: "dist"}

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.validator.EXPECT().Validate(cfg).Return(&domain.ValidationResult{
		Findings: []domain.Finding{
			{Rule: "tag-required", Severity: domain.SeverityError, Message: "tagName is required"},
		},
	})

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)
}

func TestApp_Build_LoaderFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(nil, zerr.New("bad yaml"))

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Build_OverridesApplied(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.validator.EXPECT().Validate(cfg).Return(okResult())
	f.factory.EXPECT().New(cfg).DoAndReturn(func(got *domain.BuildConfig) (ports.BuildCache, error) {
		assert.True(t, got.NoCache)
		assert.Equal(t, "custom-out", got.OutputDir)
		return f.store, nil
	})
	f.store.EXPECT().Exists().Return(false)

	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		Return(context.Background(), f.vertex)
	f.bundler.EXPECT().Bundle(gomock.Any(), cfg, ".").Return(nil)
	f.vertex.EXPECT().Complete(nil)

	f.store.EXPECT().Key().Return("")
	f.hasher.EXPECT().HashTree("custom-out").Return("", nil)
	f.infoStore.EXPECT().Put(gomock.Any()).Return(nil)
	f.store.EXPECT().Store(gomock.Any(), "custom-out").Return(nil)

	opts := app.BuildOptions{NoCache: true, OutputDir: "custom-out"}
	require.NoError(t, f.app.Build(context.Background(), opts))
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)
	cfg := buildConfig()

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.factory.EXPECT().New(cfg).Return(f.store, nil)
	f.store.EXPECT().Enabled().Return(true)
	f.store.EXPECT().Key().Return("abc")
	f.store.EXPECT().Root().Return("/cache/root")
	f.store.EXPECT().Exists().Return(true)

	status, err := f.app.Status()
	require.NoError(t, err)

	assert.True(t, status.Enabled)
	assert.Equal(t, "abc", status.Key)
	assert.Equal(t, "/cache/root", status.Root)
	assert.True(t, status.Exists)
}

func TestApp_Close(t *testing.T) {
	f := newFixture(t)
	f.telemetry.EXPECT().Close().Return(nil)

	require.NoError(t, f.app.Close())
}
