// Package appupdate checks the tnm GitHub releases for a newer version
// and applies it in place. The caller owns the confirmation gate; this
// package never touches the running binary without being asked to.
package appupdate

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
)

// Repo is the GitHub repository tnm releases are published to.
const Repo = "i7mada249/tnm"

// CheckForUpdate returns the latest release when it is strictly newer
// than the running version. Dev builds (non-semver version strings)
// skip the check entirely.
func CheckForUpdate(ctx context.Context, currentVersion string, updater Updater, logger *zap.Logger) (Release, bool, error) {
	currentSemVer, err := semver.NewVersion(currentVersion)
	if err != nil {
		logger.Debug("running a dev build, skipping update check")
		return nil, false, nil
	}

	latest, found, err := updater.DetectLatest(ctx, Repo)
	if err != nil {
		logger.Warn("error occurred while getting latest version from remote", zap.Error(err))
		return nil, false, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		logger.Warn("latest version could not be found")
		return nil, false, nil
	}

	latestSemVer, err := semver.NewVersion(latest.Version())
	if err != nil {
		logger.Error("failed to parse latest version", zap.Error(err))
		return nil, false, fmt.Errorf("failed to parse latest version %q: %w", latest.Version(), err)
	}

	if latestSemVer.LessThanEqual(currentSemVer) {
		logger.Debug("already running the latest version")
		return nil, false, nil
	}

	logger.Info("new version available",
		zap.String("current", currentSemVer.String()),
		zap.String("latest", latest.Version()),
	)
	return latest, true, nil
}

// Apply replaces the running executable with the release asset.
func Apply(ctx context.Context, release Release, updater Updater, logger *zap.Logger) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate the running executable: %w", err)
	}

	if err := updater.UpdateTo(ctx, release.AssetURL(), release.AssetName(), exePath); err != nil {
		logger.Error("failed to apply update", zap.String("version", release.Version()), zap.Error(err))
		return fmt.Errorf("failed to update to %s: %w", release.Version(), err)
	}

	logger.Info("updated", zap.String("version", release.Version()))
	return nil
}
