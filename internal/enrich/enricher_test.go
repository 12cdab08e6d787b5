package enrich

import (
	"testing"

	"gordiva/internal/asset"
	"gordiva/internal/logging"
)

func mergedRecord(guid, name string) asset.Record {
	rec := asset.NewRecord()
	rec.GUID = guid
	rec.Name = name
	rec.Merge = asset.MergeBoth
	return rec
}

func TestProcessDropsUnmatchedRows(t *testing.T) {
	enricher := NewEnricher(logging.NewNop())

	records := []asset.Record{
		mergedRecord("guid-1", "051234_SHOW_VM"),
		mergedRecord("guid-2", "051234_SHOW_EM"),
		mergedRecord("guid-3", "051234_SHOW_PPRO"),
	}
	records[1].Merge = asset.MergeLeftOnly
	records[2].Merge = asset.MergeRightOnly

	out, summary := enricher.Process(records)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].GUID != "guid-1" {
		t.Fatalf("kept %q, want guid-1", out[0].GUID)
	}
	if summary.Processed != 1 || summary.Dropped != 2 {
		t.Fatalf("summary = %+v, want 1 processed 2 dropped", summary)
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	enricher := NewEnricher(logging.NewNop())

	records := []asset.Record{mergedRecord("guid-1", "  051234_show_vm ")}
	_, _ = enricher.Process(records)

	if records[0].Name != "  051234_show_vm " {
		t.Fatalf("input record mutated: %q", records[0].Name)
	}
}

func TestProcessClassifiesBranches(t *testing.T) {
	enricher := NewEnricher(logging.NewNop())

	records := []asset.Record{
		mergedRecord("guid-v", "051234_SHOW_VM"),
		mergedRecord("guid-a", "051234_SHOW_PPRO"),
		mergedRecord("guid-g", "051234_SHOW_GRFX"),
		mergedRecord("guid-d", "SHOW_OUTGOING_QC"),
		mergedRecord("guid-u", "051234_SHOW"),
	}
	for i := range records {
		records[i].SourceCreated = "2024-01-15 10:30:00"
	}

	out, summary := enricher.Process(records)
	if len(out) != 5 {
		t.Fatalf("got %d records, want 5", len(out))
	}

	if summary.Videos != 1 || summary.Archives != 1 || summary.Graphics != 1 ||
		summary.Documents != 1 || summary.Unclassified != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	byGUID := make(map[string]asset.Record, len(out))
	for _, rec := range out {
		byGUID[rec.GUID] = rec
	}

	video := byGUID["guid-v"]
	if video.TitleType != asset.TitleTypeVideo || video.ContentType != "VM" {
		t.Errorf("video record = %q/%q", video.TitleType, video.ContentType)
	}
	if video.TrafficCode != "051234" {
		t.Errorf("video traffic code = %q", video.TrafficCode)
	}

	archive := byGUID["guid-a"]
	if archive.Filename != "051234_SHOW_PPRO_20240115103000.zip" {
		t.Errorf("archive filename = %q", archive.Filename)
	}
	if archive.ProxyCopied != asset.ProxyNotApplicable {
		t.Errorf("archive proxy state = %d, want %d", archive.ProxyCopied, asset.ProxyNotApplicable)
	}

	graphic := byGUID["guid-g"]
	if graphic.TitleType != asset.TitleTypeGraphic {
		t.Errorf("graphic title type = %q", graphic.TitleType)
	}

	document := byGUID["guid-d"]
	if document.Filename != "SHOW_OUTGOING_QC.docx" {
		t.Errorf("document filename = %q", document.Filename)
	}

	unclassified := byGUID["guid-u"]
	if unclassified.TitleType != asset.TitleTypeNull {
		t.Errorf("unclassified title type = %q", unclassified.TitleType)
	}
	if unclassified.Filename != "051234_SHOW" {
		t.Errorf("unclassified filename = %q", unclassified.Filename)
	}
}

func TestProcessNormalizesEmptyMetaXML(t *testing.T) {
	enricher := NewEnricher(logging.NewNop())

	records := []asset.Record{mergedRecord("guid-1", "051234_SHOW_VM")}
	records[0].MetaXML = ""

	out, _ := enricher.Process(records)
	if out[0].MetaXML != asset.Null {
		t.Fatalf("MetaXML = %q, want NULL", out[0].MetaXML)
	}
}
