package metadata

import "github.com/samber/lo"

// Certificate is the typed view over the attribute list.
type Certificate struct {
	SerialNumber      string
	Barcode           string
	AssetType         string
	AuthenticatedDate string
	Origin            string
	PatternType       string
}

// Attributes renders the certificate in the pinned order. Empty fields are
// kept so the list shape is stable.
func (c Certificate) Attributes() []Attribute {
	return []Attribute{
		{TraitType: TraitSerialNumber, Value: c.SerialNumber},
		{TraitType: TraitBarcode, Value: c.Barcode},
		{TraitType: TraitAssetType, Value: c.AssetType},
		{TraitType: TraitAuthenticatedDate, Value: c.AuthenticatedDate},
		{TraitType: TraitOrigin, Value: c.Origin},
		{TraitType: TraitPatternType, Value: c.PatternType},
	}
}

// CertificateFromAttributes reads known traits; unknown ones are ignored and
// missing ones stay empty. The last occurrence of a trait wins.
func CertificateFromAttributes(attrs []Attribute) Certificate {
	var c Certificate
	for _, a := range attrs {
		switch a.TraitType {
		case TraitSerialNumber:
			c.SerialNumber = a.Value
		case TraitBarcode:
			c.Barcode = a.Value
		case TraitAssetType:
			c.AssetType = a.Value
		case TraitAuthenticatedDate:
			c.AuthenticatedDate = a.Value
		case TraitOrigin:
			c.Origin = a.Value
		case TraitPatternType:
			c.PatternType = a.Value
		}
	}
	return c
}

var (
	publicTraits = []string{TraitOrigin, TraitPatternType, TraitAssetType}
	ownerTraits  = []string{TraitSerialNumber, TraitBarcode, TraitAuthenticatedDate}
)

// PublicAttributes is what any viewer of a token may see.
func PublicAttributes(attrs []Attribute) []Attribute {
	return filterTraits(attrs, publicTraits)
}

// OwnerAttributes is the private certificate part shown to the owner only.
func OwnerAttributes(attrs []Attribute) []Attribute {
	return filterTraits(attrs, ownerTraits)
}

func filterTraits(attrs []Attribute, traits []string) []Attribute {
	return lo.Filter(attrs, func(a Attribute, _ int) bool {
		return lo.Contains(traits, a.TraitType)
	})
}

// Value returns the value of trait, if present.
func Value(attrs []Attribute, trait string) (string, bool) {
	a, ok := lo.Find(attrs, func(a Attribute) bool { return a.TraitType == trait })
	return a.Value, ok
}
