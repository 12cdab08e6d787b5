package enrich

import (
	"testing"

	"gordiva/internal/asset"
	"gordiva/internal/logging"
)

func reconcileRecord(guid, name, trafficCode, contentType string) asset.Record {
	rec := asset.NewRecord()
	rec.GUID = guid
	rec.Name = name
	rec.TrafficCode = trafficCode
	rec.ContentType = contentType
	rec.TitleType = asset.TitleTypeVideo
	return rec
}

func TestReconcileSkipsNonVideo(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	rec := reconcileRecord("guid-1", "051234_SHOW_PPRO", "051234", "PPRO")
	rec.TitleType = asset.TitleTypeArchive

	records := []asset.Record{rec}
	summary := reconciler.Reconcile(records)

	if summary.Visited != 0 {
		t.Fatalf("visited %d non-video records", summary.Visited)
	}
	if records[0].Codec != asset.Null {
		t.Fatalf("archive codec mutated to %q", records[0].Codec)
	}
}

func TestReconcileCodec(t *testing.T) {
	tests := []struct {
		name        string
		assetName   string
		contentType string
		startCodec  string
		wantCodec   string
	}{
		{
			name:        "existing codec kept",
			assetName:   "051234_SHOW_VM",
			contentType: "VM",
			startCodec:  "ProRes",
			wantCodec:   "ProRes",
		},
		{
			name:        "name marker fills null codec",
			assetName:   "051234_SHOW_XDCAM",
			contentType: "XDCAM",
			startCodec:  asset.Null,
			wantCodec:   "MPEG Video",
		},
		{
			name:        "version master defaults to prores",
			assetName:   "051234_SHOW_VM",
			contentType: "VM",
			startCodec:  asset.Null,
			wantCodec:   "PRORES",
		},
		{
			name:        "edit master defaults to prores",
			assetName:   "051234_SHOW_EM",
			contentType: "EM",
			startCodec:  asset.Null,
			wantCodec:   "PRORES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reconciler := NewReconciler(logging.NewNop())
			rec := reconcileRecord("guid-1", tt.assetName, "051234", tt.contentType)
			rec.Codec = tt.startCodec

			records := []asset.Record{rec}
			reconciler.Reconcile(records)

			if records[0].Codec != tt.wantCodec {
				t.Fatalf("Codec = %q, want %q", records[0].Codec, tt.wantCodec)
			}
		})
	}
}

func TestReconcileUnresolvedCodecCounted(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	rec := reconcileRecord("guid-1", "051234_SHOW_TEXTLESS", "051234", "TEXTLESS")
	records := []asset.Record{rec}
	summary := reconciler.Reconcile(records)

	if summary.UnresolvedCodec != 1 {
		t.Fatalf("UnresolvedCodec = %d, want 1", summary.UnresolvedCodec)
	}
	if records[0].Codec != asset.Null {
		t.Fatalf("Codec = %q, want NULL", records[0].Codec)
	}
}

func TestReconcileFrameRateFromSibling(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	needsRate := reconcileRecord("guid-1", "051234_SHOW_VM", "051234", "VM")
	sibling := reconcileRecord("guid-2", "051234_SHOW_EM", "051234", "EM")
	sibling.FrameRate = "29.97"
	otherCode := reconcileRecord("guid-3", "059999_SHOW_EM", "059999", "EM")
	otherCode.FrameRate = "25"

	records := []asset.Record{needsRate, sibling, otherCode}
	reconciler.Reconcile(records)

	if records[0].FrameRate != "29.97" {
		t.Fatalf("FrameRate = %q, want 29.97 from sibling", records[0].FrameRate)
	}
	if records[2].FrameRate != "25" {
		t.Fatalf("unrelated record changed: %q", records[2].FrameRate)
	}
}

func TestReconcileFrameRateNoSibling(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	rec := reconcileRecord("guid-1", "051234_SHOW_VM", "051234", "VM")
	records := []asset.Record{rec}
	reconciler.Reconcile(records)

	if records[0].FrameRate != asset.Null {
		t.Fatalf("FrameRate = %q, want NULL when no sibling exists", records[0].FrameRate)
	}
}

func TestReconcileFrameRateCanonicalUntouched(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	rec := reconcileRecord("guid-1", "051234_SHOW_VM", "051234", "VM")
	rec.FrameRate = "23.98"
	sibling := reconcileRecord("guid-2", "051234_SHOW_EM", "051234", "EM")
	sibling.FrameRate = "29.97"

	records := []asset.Record{rec, sibling}
	reconciler.Reconcile(records)

	if records[0].FrameRate != "23.98" {
		t.Fatalf("canonical frame rate overwritten: %q", records[0].FrameRate)
	}
}

func TestReconcileResolution(t *testing.T) {
	tests := []struct {
		name        string
		assetName   string
		contentType string
		codec       string
		filename    string
		wantWidth   string
		wantHeight  string
	}{
		{
			name:        "uhd tag",
			assetName:   "051234_SHOW_UHD",
			contentType: "UHD",
			wantWidth:   "3840",
			wantHeight:  "2160",
		},
		{
			name:        "hdr in name",
			assetName:   "051234_SHOW_HDR_VM",
			contentType: "VM",
			wantWidth:   "3840",
			wantHeight:  "2160",
		},
		{
			name:        "xavc codec",
			assetName:   "051234_SHOW",
			contentType: "MXF",
			codec:       "XAVC",
			wantWidth:   "3840",
			wantHeight:  "2160",
		},
		{
			name:        "version master defaults to hd",
			assetName:   "051234_SHOW_VM",
			contentType: "VM",
			wantWidth:   "1920",
			wantHeight:  "1080",
		},
		{
			name:        "xdcam filename defaults to hd",
			assetName:   "051234_SHOW",
			contentType: "MOV",
			filename:    "051234_SHOW_XDCAM_20240115.mov",
			wantWidth:   "1920",
			wantHeight:  "1080",
		},
		{
			name:        "no rule leaves null",
			assetName:   "051234_SHOW",
			contentType: "MOV",
			wantWidth:   asset.Null,
			wantHeight:  asset.Null,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reconciler := NewReconciler(logging.NewNop())
			rec := reconcileRecord("guid-1", tt.assetName, "051234", tt.contentType)
			if tt.codec != "" {
				rec.Codec = tt.codec
			}
			if tt.filename != "" {
				rec.Filename = tt.filename
			}

			records := []asset.Record{rec}
			reconciler.Reconcile(records)

			if records[0].Width != tt.wantWidth || records[0].Height != tt.wantHeight {
				t.Fatalf("resolution = %sx%s, want %sx%s",
					records[0].Width, records[0].Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestReconcileCountsChangedRecords(t *testing.T) {
	reconciler := NewReconciler(logging.NewNop())

	changed := reconcileRecord("guid-1", "051234_SHOW_VM", "051234", "VM")
	settled := reconcileRecord("guid-2", "051234_SHOW_EM", "051234", "EM")
	settled.Codec = "ProRes"
	settled.FrameRate = "29.97"
	settled.Width, settled.Height = "1920", "1080"

	records := []asset.Record{changed, settled}
	summary := reconciler.Reconcile(records)

	if summary.Visited != 2 {
		t.Fatalf("Visited = %d, want 2", summary.Visited)
	}
	if summary.Changed != 1 {
		t.Fatalf("Changed = %d, want 1", summary.Changed)
	}
}
