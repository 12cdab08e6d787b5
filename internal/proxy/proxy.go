// Package proxy stages low-res proxy files alongside their check-in
// descriptors so Dalet picks both up from the tmp drop folder.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
	"gordiva/internal/fileutil"
	"gordiva/internal/logging"
)

// ErrBadGUID indicates a GUID too short to derive a proxy shard path from.
var ErrBadGUID = errors.New("guid too short for proxy path")

// Summary reports one staging pass.
type Summary struct {
	Copied        int
	NotApplicable int
	Missing       int
}

// Stager copies proxies and moves descriptors into the Dalet tmp folder.
type Stager struct {
	store  *datastore.Store
	cfg    *config.Config
	logger *slog.Logger
}

func NewStager(store *datastore.Store, cfg *config.Config, logger *slog.Logger) *Stager {
	return &Stager{
		store:  store,
		cfg:    cfg,
		logger: logging.WithComponent(logger, "proxy"),
	}
}

// StorePath derives where the proxy store keeps an asset's proxy. The store
// shards on the last two hex pairs of the GUID, with the full dashed GUID
// as the leaf directory.
func StorePath(root, guid string) (string, error) {
	hex := strings.ReplaceAll(guid, "-", "")
	if len(hex) < 32 {
		return "", fmt.Errorf("%w: %s", ErrBadGUID, guid)
	}
	shardA := hex[28:30]
	shardB := hex[30:32]
	return filepath.Join(root, shardA, shardB, guid, guid+".mov"), nil
}

// Run stages proxies for checked-in assets that have not been handled yet.
// Non-video assets are flagged not-applicable without touching the
// filesystem. Missing proxies are logged and left pending so a later pass
// can retry after the proxy store catches up.
func (s *Stager) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	pending, err := s.store.PendingProxy(ctx, s.cfg.Checkin.MaxLimit)
	if err != nil {
		return summary, err
	}

	for i := range pending {
		rec := &pending[i]

		if !rec.IsVideo() {
			if err := s.store.MarkProxyCopied(ctx, rec.GUID, asset.ProxyNotApplicable); err != nil {
				return summary, err
			}
			summary.NotApplicable++
			continue
		}

		sourcePath, err := StorePath(s.cfg.Paths.ProxyStoreDir, rec.GUID)
		if err != nil {
			s.logger.Error("proxy path derivation failed",
				logging.String("guid", rec.GUID), logging.Error(err))
			summary.Missing++
			continue
		}
		if _, err := os.Stat(sourcePath); err != nil {
			s.logger.Error("proxy file not found",
				logging.String("guid", rec.GUID),
				logging.String("path", sourcePath))
			summary.Missing++
			continue
		}

		if err := s.stage(ctx, rec, sourcePath); err != nil {
			return summary, err
		}
		summary.Copied++
	}

	s.logger.Info("proxy staging complete",
		logging.Int("copied", summary.Copied),
		logging.Int("not_applicable", summary.NotApplicable),
		logging.Int("missing", summary.Missing))
	return summary, nil
}

func (s *Stager) stage(ctx context.Context, rec *asset.Record, sourcePath string) error {
	tmpDir := s.cfg.Paths.DaletTmpDir
	proxyDst := filepath.Join(tmpDir, rec.GUID+".mov")
	if err := fileutil.CopyVerified(sourcePath, proxyDst); err != nil {
		return fmt.Errorf("copy proxy %s: %w", rec.GUID, err)
	}
	s.logger.Info("proxy copied", logging.String("guid", rec.GUID))

	descriptorSrc := filepath.Join(s.cfg.Paths.XMLCheckinDir, rec.GUID+".xml")
	descriptorDst := filepath.Join(tmpDir, rec.GUID+".xml")
	if err := fileutil.Move(descriptorSrc, descriptorDst); err != nil {
		return fmt.Errorf("move descriptor %s: %w", rec.GUID, err)
	}
	s.logger.Info("descriptor staged", logging.String("guid", rec.GUID))

	return s.store.MarkProxyCopied(ctx, rec.GUID, asset.ProxyCopied)
}
