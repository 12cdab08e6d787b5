package proxy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gordiva/internal/asset"
	"gordiva/internal/logging"
	"gordiva/internal/testsupport"
)

const testGUID = "8e5a3a8a-1111-2222-3333-44556677aabb"

func TestStorePath(t *testing.T) {
	got, err := StorePath("/proxies", testGUID)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/proxies", "aa", "bb", testGUID, testGUID+".mov")
	if got != want {
		t.Fatalf("StorePath = %q, want %q", got, want)
	}
}

func TestStorePathShortGUID(t *testing.T) {
	if _, err := StorePath("/proxies", "short"); err == nil {
		t.Fatal("expected error for short guid")
	}
}

func stagedRecord(guid string, titleType asset.TitleType) asset.Record {
	rec := asset.NewRecord()
	rec.GUID = guid
	rec.Name = "051234_SHOW_VM"
	rec.DataTapeID = "DT0001"
	rec.TitleType = titleType
	rec.OCComponentName = "/051234_SHOW_VM.mxf"
	rec.XMLCreated = 1
	return rec
}

func TestStagerRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	video := stagedRecord(testGUID, asset.TitleTypeVideo)
	archive := stagedRecord("9f6b4b9b-1111-2222-3333-44556677ccdd", asset.TitleTypeArchive)
	missing := stagedRecord("1a2b3c4d-1111-2222-3333-44556677eeff", asset.TitleTypeVideo)

	testsupport.LoadBatch(t, store, []asset.Record{video, archive, missing})

	proxySrc, err := StorePath(cfg.Paths.ProxyStoreDir, testGUID)
	if err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFile(t, proxySrc, 64)

	descriptor := filepath.Join(cfg.Paths.XMLCheckinDir, testGUID+".xml")
	testsupport.WriteFile(t, descriptor, 32)

	stager := NewStager(store, cfg, logging.NewNop())
	summary, err := stager.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Copied != 1 || summary.NotApplicable != 1 || summary.Missing != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.DaletTmpDir, testGUID+".mov")); err != nil {
		t.Errorf("proxy not staged: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DaletTmpDir, testGUID+".xml")); err != nil {
		t.Errorf("descriptor not staged: %v", err)
	}
	if _, err := os.Stat(descriptor); !os.IsNotExist(err) {
		t.Errorf("descriptor still in check-in dir: %v", err)
	}

	staged, err := store.GetByGUID(ctx, testGUID)
	if err != nil {
		t.Fatal(err)
	}
	if staged.ProxyCopied != asset.ProxyCopied {
		t.Errorf("video proxy state = %d, want %d", staged.ProxyCopied, asset.ProxyCopied)
	}

	flagged, err := store.GetByGUID(ctx, archive.GUID)
	if err != nil {
		t.Fatal(err)
	}
	if flagged.ProxyCopied != asset.ProxyNotApplicable {
		t.Errorf("archive proxy state = %d, want %d", flagged.ProxyCopied, asset.ProxyNotApplicable)
	}

	pending, err := store.GetByGUID(ctx, missing.GUID)
	if err != nil {
		t.Fatal(err)
	}
	if pending.ProxyCopied != asset.ProxyNotCopied {
		t.Errorf("missing proxy state = %d, want still pending", pending.ProxyCopied)
	}
}
