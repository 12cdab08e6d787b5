package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gordiva/internal/asset"
)

// Canonical column names shared by the merged, cleaned, and final CSVs and
// the assets datastore.
const (
	ColGUID            = "GUID"
	ColName            = "NAME"
	ColFileSize        = "FILESIZE"
	ColDataTapeID      = "DATATAPEID"
	ColObjectName      = "OBJECTNM"
	ColContentLength   = "CONTENTLENGTH"
	ColSourceCreated   = "SOURCECREATEDT"
	ColCreated         = "CREATEDT"
	ColLastModified    = "LASTMDYDT"
	ColTimecodeIn      = "TIMECODEIN"
	ColTimecodeOut     = "TIMECODEOUT"
	ColOnAirID         = "ONAIRID"
	ColRURI            = "RURI"
	ColTitleType       = "TITLETYPE"
	ColFrameRate       = "FRAMERATE"
	ColCodec           = "CODEC"
	ColWidth           = "V_WIDTH"
	ColHeight          = "V_HEIGHT"
	ColTrafficCode     = "TRAFFIC_CODE"
	ColDurationMS      = "DURATION_MS"
	ColXMLCreated      = "XML_CREATED"
	ColProxyCopied     = "PROXY_COPIED"
	ColContentType     = "CONTENT_TYPE"
	ColFilename        = "FILENAME"
	ColMetaXML         = "METAXML"
	ColOCComponentName = "OC_COMPONENT_NAME"
	ColMerge           = "_MERGE"
)

// Columns returns the full cleaned-batch column order.
func Columns() []string {
	return []string{
		ColGUID, ColName, ColFileSize, ColDataTapeID, ColObjectName,
		ColContentLength, ColSourceCreated, ColCreated, ColLastModified,
		ColTimecodeIn, ColTimecodeOut, ColOnAirID, ColRURI,
		ColTitleType, ColFrameRate, ColCodec, ColWidth, ColHeight,
		ColTrafficCode, ColDurationMS, ColXMLCreated, ColProxyCopied,
		ColContentType, ColFilename, ColMetaXML, ColOCComponentName,
		ColMerge,
	}
}

// Stamp formats a batch timestamp the way every intermediate file is named.
func Stamp(t time.Time) string {
	return t.Format("200601021504")
}

// Dated file names for the intermediate CSVs of one batch.
func MergedCSV(dir, stamp string) string {
	return filepath.Join(dir, stamp+"_gor_diva_merged_export.csv")
}

func ParsedCSV(dir, stamp string) string {
	return filepath.Join(dir, stamp+"_gor_diva_merged_parsed.csv")
}

func CleanedCSV(dir, stamp string) string {
	return filepath.Join(dir, stamp+"_gor_diva_merged_cleaned.csv")
}

func FinalCSV(dir, stamp string) string {
	return filepath.Join(dir, stamp+"_gor_diva_merged_cleaned_final.csv")
}

// ReadRecords loads a CSV into asset records, mapping columns by header
// name. Unknown columns are ignored and missing ones keep their record
// defaults, so the reader accepts the merged table as well as the cleaned
// batches.
func ReadRecords(path string) ([]asset.Record, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(table.Header))
	for i, col := range table.Header {
		index[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	if _, ok := index[ColGUID]; !ok {
		return nil, fmt.Errorf("csv %s: missing %s column", path, ColGUID)
	}

	field := func(row []string, col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	records := make([]asset.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := asset.NewRecord()
		if v, ok := field(row, ColGUID); ok {
			rec.GUID = strings.TrimSpace(v)
		}
		if v, ok := field(row, ColName); ok {
			rec.Name = v
		}
		if v, ok := field(row, ColFileSize); ok {
			rec.FileSize = parseInt(v)
		}
		if v, ok := field(row, ColDataTapeID); ok {
			rec.DataTapeID = asset.OrNull(v)
		}
		if v, ok := field(row, ColObjectName); ok {
			rec.ObjectName = asset.OrNull(v)
		}
		if v, ok := field(row, ColContentLength); ok {
			rec.ContentLength = parseInt(v)
		}
		if v, ok := field(row, ColSourceCreated); ok {
			rec.SourceCreated = v
		}
		if v, ok := field(row, ColCreated); ok {
			rec.Created = v
		}
		if v, ok := field(row, ColLastModified); ok {
			rec.LastModified = v
		}
		if v, ok := field(row, ColTimecodeIn); ok {
			rec.TimecodeIn = v
		}
		if v, ok := field(row, ColTimecodeOut); ok {
			rec.TimecodeOut = v
		}
		if v, ok := field(row, ColOnAirID); ok {
			rec.OnAirID = v
		}
		if v, ok := field(row, ColRURI); ok {
			rec.RURI = v
		}
		if v, ok := field(row, ColTitleType); ok && !asset.IsNull(v) {
			rec.TitleType = asset.TitleType(v)
		}
		if v, ok := field(row, ColFrameRate); ok {
			rec.FrameRate = asset.OrNull(v)
		}
		if v, ok := field(row, ColCodec); ok {
			rec.Codec = asset.OrNull(v)
		}
		if v, ok := field(row, ColWidth); ok {
			rec.Width = asset.OrNull(v)
		}
		if v, ok := field(row, ColHeight); ok {
			rec.Height = asset.OrNull(v)
		}
		if v, ok := field(row, ColTrafficCode); ok {
			rec.TrafficCode = asset.OrNull(v)
		}
		if v, ok := field(row, ColDurationMS); ok {
			rec.DurationMS = asset.OrNull(v)
		}
		if v, ok := field(row, ColXMLCreated); ok {
			rec.XMLCreated = int(parseInt(v))
		}
		if v, ok := field(row, ColProxyCopied); ok {
			rec.ProxyCopied = int(parseInt(v))
		}
		if v, ok := field(row, ColContentType); ok {
			rec.ContentType = asset.OrNull(v)
		}
		if v, ok := field(row, ColFilename); ok {
			rec.Filename = asset.OrNull(v)
		}
		if v, ok := field(row, ColMetaXML); ok {
			rec.MetaXML = asset.OrNull(v)
		}
		if v, ok := field(row, ColOCComponentName); ok {
			rec.OCComponentName = asset.OrNull(v)
		}
		if v, ok := field(row, ColMerge); ok {
			rec.Merge = strings.TrimSpace(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes a batch in the canonical column order. The metaxml
// column can be omitted for the final export, matching the original
// cleaned-final file layout.
func WriteRecords(path string, records []asset.Record, includeMetaXML bool) error {
	header := Columns()
	if !includeMetaXML {
		header = withoutColumn(header, ColMetaXML)
	}

	table := &Table{Header: header}
	for i := range records {
		rec := &records[i]
		row := make([]string, 0, len(header))
		for _, col := range header {
			row = append(row, recordField(rec, col))
		}
		table.Rows = append(table.Rows, row)
	}
	return WriteTable(path, table)
}

func withoutColumn(cols []string, drop string) []string {
	out := make([]string, 0, len(cols)-1)
	for _, col := range cols {
		if col != drop {
			out = append(out, col)
		}
	}
	return out
}

func recordField(rec *asset.Record, col string) string {
	switch col {
	case ColGUID:
		return rec.GUID
	case ColName:
		return rec.Name
	case ColFileSize:
		return strconv.FormatInt(rec.FileSize, 10)
	case ColDataTapeID:
		return rec.DataTapeID
	case ColObjectName:
		return rec.ObjectName
	case ColContentLength:
		return strconv.FormatInt(rec.ContentLength, 10)
	case ColSourceCreated:
		return rec.SourceCreated
	case ColCreated:
		return rec.Created
	case ColLastModified:
		return rec.LastModified
	case ColTimecodeIn:
		return rec.TimecodeIn
	case ColTimecodeOut:
		return rec.TimecodeOut
	case ColOnAirID:
		return rec.OnAirID
	case ColRURI:
		return rec.RURI
	case ColTitleType:
		return string(rec.TitleType)
	case ColFrameRate:
		return rec.FrameRate
	case ColCodec:
		return rec.Codec
	case ColWidth:
		return rec.Width
	case ColHeight:
		return rec.Height
	case ColTrafficCode:
		return rec.TrafficCode
	case ColDurationMS:
		return rec.DurationMS
	case ColXMLCreated:
		return strconv.Itoa(rec.XMLCreated)
	case ColProxyCopied:
		return strconv.Itoa(rec.ProxyCopied)
	case ColContentType:
		return rec.ContentType
	case ColFilename:
		return rec.Filename
	case ColMetaXML:
		return rec.MetaXML
	case ColOCComponentName:
		return rec.OCComponentName
	case ColMerge:
		return rec.Merge
	default:
		return ""
	}
}

func parseInt(value string) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || asset.IsNull(trimmed) {
		return 0
	}
	// Some export tools serialize counts as floats ("123.0").
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 {
		trimmed = trimmed[:dot]
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
