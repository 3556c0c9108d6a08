package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
	"github.com/dmitrijs2005/batiknft/internal/serial"
)

func formatRow(rec reconstruct.ListingRecord) string {
	state := "listed"
	if rec.Sold {
		state = "sold"
	}
	pattern, _ := metadata.Value(rec.Attributes, metadata.TraitPatternType)
	return fmt.Sprintf("#%-5s %-24s %-12s %10s %s  %s", rec.TokenID, truncate(rec.Name, 24), truncate(pattern, 12), rec.Price, common.Currency, state)
}

func formatDetail(v *services.DetailView) string {
	rec := v.Record

	var b strings.Builder
	fmt.Fprintf(&b, "Token #%s: %s\n", rec.TokenID, rec.Name)
	fmt.Fprintf(&b, "  %s\n", rec.Description)
	fmt.Fprintf(&b, "  Image:  %s\n", rec.Image)
	fmt.Fprintf(&b, "  Price:  %s %s\n", rec.Price, common.Currency)
	fmt.Fprintf(&b, "  Seller: %s\n", rec.Seller.Hex())
	fmt.Fprintf(&b, "  Owner:  %s\n", rec.Owner.Hex())
	fmt.Fprintf(&b, "  You are the %s\n", v.Role)

	for _, attr := range v.Public {
		fmt.Fprintf(&b, "  %s: %s\n", attr.TraitType, attr.Value)
	}

	if c := v.Certificate; c != nil {
		b.WriteString("  Certificate of authenticity\n")
		fmt.Fprintf(&b, "    Serial Number:       %s\n", c.SerialNumber)
		if year, seq, err := serial.Parse(c.SerialNumber); err == nil {
			fmt.Fprintf(&b, "    Issued:              %d, no. %d\n", year, seq)
		} else {
			b.WriteString("    (serial number is not in BATIK-YYYY-NNNNNN form)\n")
		}
		fmt.Fprintf(&b, "    Barcode:             %s\n", c.Barcode)
		fmt.Fprintf(&b, "    Authentication Date: %s\n", c.AuthenticatedDate)
	}

	if names := actionNames(v); len(names) > 0 {
		fmt.Fprintf(&b, "  Actions: %s", strings.Join(names, ", "))
	} else {
		b.WriteString("  No actions available")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
