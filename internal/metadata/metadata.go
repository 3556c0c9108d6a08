// Package metadata assembles the certificate-of-authenticity document that
// is pinned off-chain for every batik token, and splits its attributes into
// the public part and the part only the owner gets to see.
package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
)

// Schema tags every document this package produces.
const Schema = "batik-coa/1"

// Trait names as they appear in the attribute list.
const (
	TraitSerialNumber      = "Serial Number"
	TraitBarcode           = "Barcode"
	TraitAssetType         = "Asset Type"
	TraitAuthenticatedDate = "Authentication Date"
	TraitOrigin            = "Origin"
	TraitPatternType       = "Pattern Type"
)

const (
	AssetTypeBatik     = "Batik"
	DefaultOrigin      = "Unknown"
	DefaultPatternType = "Traditional"

	// DateLayout is ISO-8601 UTC with milliseconds.
	DateLayout = "2006-01-02T15:04:05.000Z"
)

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Document is the JSON pinned for a token and referenced by its token URI.
type Document struct {
	Schema      string      `json:"schema,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Input carries what the creator supplies plus the generated identifiers.
type Input struct {
	Name         string
	Description  string
	ImageURI     string
	SerialNumber string
	Barcode      string
	Origin       string
	PatternType  string
}

// Build produces the document for in, stamping the authentication date with now.
func Build(in Input, now time.Time) (Document, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.ImageURI) == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return Document{}, fmt.Errorf("%w: missing %s", common.ErrIncompleteMetadata, strings.Join(missing, ", "))
	}

	cert := Certificate{
		SerialNumber:      in.SerialNumber,
		Barcode:           in.Barcode,
		AssetType:         AssetTypeBatik,
		AuthenticatedDate: now.UTC().Format(DateLayout),
		Origin:            orDefault(in.Origin, DefaultOrigin),
		PatternType:       orDefault(in.PatternType, DefaultPatternType),
	}

	return Document{
		Schema:      Schema,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.ImageURI,
		Attributes:  cert.Attributes(),
	}, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func Marshal(d Document) ([]byte, error) {
	return json.Marshal(d)
}

// Decode parses a pinned document. Documents written before the schema tag
// existed decode with an empty Schema.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode metadata: %w", err)
	}
	return d, nil
}
