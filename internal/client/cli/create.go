package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/price"
)

func (a *App) Fee(ctx context.Context, _ []string) error {
	fee, err := a.market.ListingFee(ctx)
	if err != nil {
		return err
	}
	printlnFn("Listing fee:", fee, common.Currency)
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		var err error
		if path, err = GetSimpleText(a.reader, "Image path", a.out); err != nil {
			return err
		}
	}
	if path == "" {
		return errors.New("usage: upload <path>")
	}

	printlnFn("Uploading...")
	url, err := a.market.UploadImage(ctx, path)
	if err != nil {
		return err
	}
	a.lastImage = url
	printlnFn("Image:", url)
	return nil
}

func (a *App) Cert(ctx context.Context, _ []string) error {
	draft, err := a.market.NewCertificate(ctx)
	if err != nil {
		return err
	}
	a.draft = &draft
	printlnFn("Serial number:", draft.SerialNumber)
	printlnFn("Barcode:      ", draft.Barcode)
	return nil
}

func (a *App) Create(ctx context.Context, _ []string) error {
	return a.create(ctx, true)
}

func (a *App) Mint(ctx context.Context, _ []string) error {
	return a.create(ctx, false)
}

// create collects the form and submits it. Serial and barcode come from the
// last 'cert' when there is one, otherwise the service issues them.
func (a *App) create(ctx context.Context, listForSale bool) error {
	var (
		in  = services.CreateInput{ListForSale: listForSale}
		err error
	)

	if in.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if listForSale {
		if in.Price, err = GetSimpleText(a.reader, "Price in "+common.Currency, a.out); err != nil {
			return err
		}
		if _, err := price.ToBaseUnits(in.Price); err != nil {
			return err
		}
	}
	if in.ImageURI, err = GetTextOr(a.reader, "Image URL", a.lastImage, a.out); err != nil {
		return err
	}
	if in.Origin, err = GetTextOr(a.reader, "Origin", "Unknown", a.out); err != nil {
		return err
	}
	if in.PatternType, err = GetTextOr(a.reader, "Pattern type", "Traditional", a.out); err != nil {
		return err
	}
	if a.draft != nil {
		in.SerialNumber = a.draft.SerialNumber
		in.Barcode = a.draft.Barcode
	}

	if listForSale {
		fee, err := a.market.ListingFee(ctx)
		if err != nil {
			return err
		}
		ok, err := GetYesNo(a.reader, "List for "+in.Price+" "+common.Currency+" paying a fee of "+fee+" "+common.Currency+"?", true, a.out)
		if err != nil {
			return err
		}
		if !ok {
			printlnFn("Cancelled.")
			return nil
		}
	}

	printlnFn("Submitting, confirm in your wallet and wait for the block...")
	res, err := a.market.CreateNFT(ctx, in)
	if err != nil {
		return err
	}

	a.draft = nil
	a.lastImage = ""
	printlnFn("Token URI:", res.TokenURI)
	printlnFn("Transaction:", res.Receipt.Hash.Hex())
	if res.Receipt.TokenID != nil {
		printlnFn("Token ID:", res.Receipt.TokenID.String())
	}
	return nil
}
