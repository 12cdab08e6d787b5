// Package checkin generates Dalet title descriptors for cleaned assets and
// tracks which assets have been handed to the MAM watch folder.
package checkin

import (
	"encoding/xml"
	"fmt"
	"strings"

	"gordiva/internal/asset"
)

// Dalet media placement constants for content restored from the Diva archive.
const (
	mediaFormatID      = 100002
	mediaStorageName   = "G_DIVA"
	mediaStorageID     = 161
	mediaProcessStatus = "Online"
)

// Titles is the root element of a Dalet check-in descriptor.
type Titles struct {
	XMLName xml.Name `xml:"Titles"`
	Title   Title    `xml:"Title"`
}

// Title carries the metadata fields Dalet parses during check-in. Field
// names follow the Dalet schema, misspellings included.
type Title struct {
	Key1            string     `xml:"key1"`
	ItemCode        string     `xml:"itemcode"`
	Title           string     `xml:"title"`
	NGCITitle       string     `xml:"NGC_NGCITitle"`
	DivaTapeID      string     `xml:"NGC_DivaTapeID"`
	FolderPath      string     `xml:"NGC_FolderPath"`
	StartOfMaterial string     `xml:"StartOfMaterial"`
	TrafficCode     string     `xml:"NGC_NGCITrafficCode"`
	TitleType       string     `xml:"titletype"`
	ContentType     string     `xml:"NGC_ContentType"`
	FrameRate       string     `xml:"AMFieldFromParsing_FrameRate"`
	Codec           string     `xml:"AMFieldFromParsing_Codec"`
	Width           string     `xml:"AMFieldFromParsing_Width"`
	Height          string     `xml:"AMFieldFromParsing_Hight"`
	Duration        string     `xml:"duration"`
	MediaInfos      MediaInfos `xml:"MediaInfos"`
}

type MediaInfos struct {
	MediaInfo MediaInfo `xml:"MediaInfo"`
}

type MediaInfo struct {
	MediaFormatID      int    `xml:"mediaFormatId"`
	MediaStorageName   string `xml:"mediaStorageName"`
	MediaStorageID     int    `xml:"mediaStorageId"`
	MediaFileName      string `xml:"mediaFileName"`
	MediaProcessStatus string `xml:"mediaProcessStatus"`
}

// NewDescriptor builds a descriptor for one asset. The watch folder root is
// joined with the asset's object component to form the restore path Dalet
// expects.
func NewDescriptor(rec *asset.Record, watchFolderRoot string) Titles {
	return Titles{
		Title: Title{
			Key1:            rec.GUID,
			ItemCode:        rec.GUID,
			Title:           rec.Name,
			NGCITitle:       rec.Name,
			DivaTapeID:      rec.DataTapeID,
			FolderPath:      watchFolderRoot + rec.OCComponentName,
			StartOfMaterial: rec.TimecodeIn,
			TrafficCode:     unquoteTrafficCode(rec.TrafficCode),
			TitleType:       string(rec.TitleType),
			ContentType:     rec.ContentType,
			FrameRate:       rec.FrameRate,
			Codec:           rec.Codec,
			Width:           rec.Width,
			Height:          rec.Height,
			Duration:        rec.DurationMS,
			MediaInfos: MediaInfos{
				MediaInfo: MediaInfo{
					MediaFormatID:      mediaFormatID,
					MediaStorageName:   mediaStorageName,
					MediaStorageID:     mediaStorageID,
					MediaFileName:      rec.GUID,
					MediaProcessStatus: mediaProcessStatus,
				},
			},
		},
	}
}

// Marshal renders the descriptor as indented XML.
func (t Titles) Marshal() ([]byte, error) {
	data, err := xml.MarshalIndent(t, "", "   ")
	if err != nil {
		return nil, fmt.Errorf("marshal descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// Spreadsheet exports wrap traffic codes in ="..." to keep leading zeros.
func unquoteTrafficCode(code string) string {
	return strings.Trim(code, `="`)
}
