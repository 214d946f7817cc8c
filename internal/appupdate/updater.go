package appupdate

import (
	"context"

	"github.com/creativeprojects/go-selfupdate"
)

// Release describes one published release of tnm.
type Release interface {
	Version() string
	AssetURL() string
	AssetName() string
}

// Updater detects and applies releases. The indirection exists so
// tests can script release discovery without network access.
type Updater interface {
	DetectLatest(ctx context.Context, repo string) (Release, bool, error)
	UpdateTo(ctx context.Context, assetURL string, assetName string, exePath string) error
}

// DefaultUpdater is the production Updater backed by go-selfupdate's
// GitHub release source.
type DefaultUpdater struct{}

func (DefaultUpdater) DetectLatest(ctx context.Context, repo string) (Release, bool, error) {
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil || !found || latest == nil {
		return nil, false, err
	}
	return githubRelease{latest}, true, nil
}

func (DefaultUpdater) UpdateTo(ctx context.Context, assetURL string, assetName string, exePath string) error {
	return selfupdate.UpdateTo(ctx, assetURL, assetName, exePath)
}

type githubRelease struct {
	release *selfupdate.Release
}

func (r githubRelease) Version() string {
	return r.release.Version()
}

func (r githubRelease) AssetURL() string {
	return r.release.AssetURL
}

func (r githubRelease) AssetName() string {
	return r.release.AssetName
}
