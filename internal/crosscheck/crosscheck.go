// Package crosscheck reconciles datastore flags against what actually
// landed on disk. Dalet renames descriptors to .xml_DONE after ingest, and
// the proxy store holds a .mov per staged asset, so the filesystem is the
// source of truth when runs were interrupted.
package crosscheck

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
	"gordiva/internal/logging"
)

const doneSuffix = ".xml_DONE"

// Summary reports one crosscheck pass.
type Summary struct {
	DescriptorsSeen int
	ProxiesSeen     int
	XMLUpdated      int
	ProxyUpdated    int
	Unknown         int
}

// Checker walks the check-in and proxy trees and updates stale flags.
type Checker struct {
	store  *datastore.Store
	cfg    *config.Config
	logger *slog.Logger
}

func NewChecker(store *datastore.Store, cfg *config.Config, logger *slog.Logger) *Checker {
	return &Checker{
		store:  store,
		cfg:    cfg,
		logger: logging.WithComponent(logger, "crosscheck"),
	}
}

// Run scans both trees and backfills xml_created and proxy_copied flags for
// assets whose files exist but whose flags never got set.
func (c *Checker) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	doneGUIDs, err := collectGUIDs(c.cfg.Paths.XMLCheckinDir, func(name string) (string, bool) {
		if strings.Contains(name, "test") || !strings.HasSuffix(name, doneSuffix) {
			return "", false
		}
		return strings.TrimSuffix(name, doneSuffix), true
	})
	if err != nil {
		return summary, err
	}
	summary.DescriptorsSeen = len(doneGUIDs)

	for _, guid := range doneGUIDs {
		updated, err := c.backfillXML(ctx, guid)
		if err != nil {
			return summary, err
		}
		switch updated {
		case backfillApplied:
			summary.XMLUpdated++
		case backfillUnknown:
			summary.Unknown++
		}
	}

	proxyGUIDs, err := collectGUIDs(c.cfg.Paths.ProxyStoreDir, func(name string) (string, bool) {
		if !strings.HasSuffix(name, ".mov") {
			return "", false
		}
		return strings.TrimSuffix(name, ".mov"), true
	})
	if err != nil {
		return summary, err
	}
	summary.ProxiesSeen = len(proxyGUIDs)

	for _, guid := range proxyGUIDs {
		updated, err := c.backfillProxy(ctx, guid)
		if err != nil {
			return summary, err
		}
		switch updated {
		case backfillApplied:
			summary.ProxyUpdated++
		case backfillUnknown:
			summary.Unknown++
		}
	}

	c.logger.Info("crosscheck complete",
		logging.Int("descriptors_seen", summary.DescriptorsSeen),
		logging.Int("proxies_seen", summary.ProxiesSeen),
		logging.Int("xml_updated", summary.XMLUpdated),
		logging.Int("proxy_updated", summary.ProxyUpdated),
		logging.Int("unknown", summary.Unknown))
	return summary, nil
}

type backfillResult int

const (
	backfillNone backfillResult = iota
	backfillApplied
	backfillUnknown
)

func (c *Checker) backfillXML(ctx context.Context, guid string) (backfillResult, error) {
	rec, err := c.store.GetByGUID(ctx, guid)
	if err != nil {
		return backfillNone, err
	}
	if rec == nil {
		c.logger.Error("descriptor guid not in datastore", logging.String("guid", guid))
		return backfillUnknown, nil
	}
	if rec.XMLCreated == 1 {
		return backfillNone, nil
	}
	if _, err := c.store.MarkXMLCreated(ctx, []string{guid}); err != nil {
		return backfillNone, err
	}
	c.logger.Info("xml flag backfilled", logging.String("guid", guid))
	return backfillApplied, nil
}

func (c *Checker) backfillProxy(ctx context.Context, guid string) (backfillResult, error) {
	rec, err := c.store.GetByGUID(ctx, guid)
	if err != nil {
		return backfillNone, err
	}
	if rec == nil {
		c.logger.Error("proxy guid not in datastore", logging.String("guid", guid))
		return backfillUnknown, nil
	}
	if rec.ProxyCopied == asset.ProxyCopied {
		return backfillNone, nil
	}
	if err := c.store.MarkProxyCopied(ctx, guid, asset.ProxyCopied); err != nil {
		return backfillNone, err
	}
	c.logger.Info("proxy flag backfilled", logging.String("guid", guid))
	return backfillApplied, nil
}

func collectGUIDs(root string, match func(name string) (string, bool)) ([]string, error) {
	var guids []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if guid, ok := match(d.Name()); ok {
			guids = append(guids, guid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return guids, nil
}
