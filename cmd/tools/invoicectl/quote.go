package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/noah-isme/shipledger/internal/invoice"
	"github.com/noah-isme/shipledger/internal/money"
	"github.com/noah-isme/shipledger/internal/shipment"
)

type quoteOptions struct {
	shipType        string
	subtype         string
	cbm             string
	odc             bool
	packages        int32
	fx              string
	discount        string
	discountPercent bool
	adjustment      string
	inboundRate     string
	outboundRate    string
	transport       string
	odcSurcharge    string
	taxPercent      string
	asJSON          bool
}

func newQuoteCmd() *cobra.Command {
	var o quoteOptions
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a shipment with the default tariff without touching the database",
		Example: `  invoicectl quote --type Inbound --subtype "DTA to FTWZ" --cbm 10
  invoicectl quote --type Outbound --subtype "FTWZ to DTA" --cbm 3.5 --odc --packages 2 --fx 84 --discount 5 --discount-percent`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := o.build()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if o.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(draft)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DESCRIPTION\tQTY\tRATE\tAMOUNT (INR)\tTAX (INR)")
			for _, l := range draft.Lines {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					l.Description, l.Quantity.String(), money.Format(l.Rate, l.Currency),
					money.Fixed(l.AmountINR), money.Fixed(l.TaxINR))
			}
			t := draft.Totals
			fmt.Fprintf(tw, "\t\t\tTaxable\t%s\n", money.Format(t.TaxableINR, money.INR))
			fmt.Fprintf(tw, "\t\t\tTax\t%s\n", money.Format(t.TaxINR, money.INR))
			if !t.DiscountINR.IsZero() {
				fmt.Fprintf(tw, "\t\t\tDiscount\t%s\n", money.Format(t.DiscountINR.Neg(), money.INR))
			}
			if !t.AdjustmentINR.IsZero() {
				fmt.Fprintf(tw, "\t\t\tAdjustment\t%s\n", money.Format(t.AdjustmentINR, money.INR))
			}
			fmt.Fprintf(tw, "\t\t\tGrand total\t%s (%s)\n", money.Format(t.GrandTotalINR, money.INR), money.Format(t.GrandTotalUSD, money.USD))
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.shipType, "type", "", "shipment type (Inbound or Outbound)")
	f.StringVar(&o.subtype, "subtype", "", "shipment subtype valid for the type")
	f.StringVar(&o.cbm, "cbm", "", "cargo volume in cubic metres")
	f.BoolVar(&o.odc, "odc", false, "over-dimensional cargo")
	f.Int32Var(&o.packages, "packages", 0, "package count, billed by the ODC surcharge")
	f.StringVar(&o.fx, "fx", "83.50", "INR per one USD")
	f.StringVar(&o.discount, "discount", "0", "invoice discount, INR or percent")
	f.BoolVar(&o.discountPercent, "discount-percent", false, "treat --discount as a percentage of the subtotal")
	f.StringVar(&o.adjustment, "adjustment", "0", "signed INR adjustment")
	f.StringVar(&o.inboundRate, "inbound-rate", "12", "inbound handling USD per CBM")
	f.StringVar(&o.outboundRate, "outbound-rate", "15", "outbound handling USD per CBM")
	f.StringVar(&o.transport, "transport", "4500", "transportation charge in INR")
	f.StringVar(&o.odcSurcharge, "odc-surcharge", "1500", "ODC surcharge in INR")
	f.StringVar(&o.taxPercent, "tax", "18", "GST percent applied to every line")
	f.BoolVar(&o.asJSON, "json", false, "print the draft as JSON")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("subtype")
	_ = cmd.MarkFlagRequired("cbm")
	return cmd
}

func (o quoteOptions) build() (invoice.Draft, error) {
	t, err := shipment.ParseType(o.shipType)
	if err != nil {
		return invoice.Draft{}, err
	}
	if err := shipment.ValidateSubtype(t, o.subtype); err != nil {
		return invoice.Draft{}, err
	}
	values := map[string]string{
		"cbm": o.cbm, "fx": o.fx, "discount": o.discount, "adjustment": o.adjustment,
		"inbound-rate": o.inboundRate, "outbound-rate": o.outboundRate, "transport": o.transport,
		"odc-surcharge": o.odcSurcharge, "tax": o.taxPercent,
	}
	parsed := make(map[string]decimal.Decimal, len(values))
	for name, raw := range values {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return invoice.Draft{}, fmt.Errorf("--%s: %w", name, err)
		}
		parsed[name] = d
	}
	if o.odc && o.packages <= 0 {
		return invoice.Draft{}, errors.New("--packages is required for ODC cargo")
	}
	if parsed["cbm"].IsNegative() {
		return invoice.Draft{}, errors.New("--cbm must not be negative")
	}

	tariff := shipment.Tariff{
		HandlingUSDPerCBM: map[shipment.Type]decimal.Decimal{
			shipment.Inbound:  parsed["inbound-rate"],
			shipment.Outbound: parsed["outbound-rate"],
		},
		TransportINR:    parsed["transport"],
		ODCSurchargeINR: parsed["odc-surcharge"],
		TaxPercent:      parsed["tax"],
		HSNSAC:          "996719",
	}
	discount := invoice.Discount{Kind: invoice.DiscountAbsolute, Value: parsed["discount"]}
	if o.discountPercent {
		discount.Kind = invoice.DiscountPercent
	}
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return invoice.Draft{}, err
	}
	svc := invoice.Service{Builder: invoice.NewBuilder(invoice.BuilderConfig{Prefix: "QUOTE", Location: loc})}
	return svc.Quote(invoice.DraftInput{
		Lines:      tariff.DefaultLines(shipment.Shipment{Type: t, Subtype: o.subtype, CBM: parsed["cbm"], ODC: o.odc, PackageCount: o.packages}),
		FxRate:     parsed["fx"],
		Discount:   discount,
		Adjustment: parsed["adjustment"],
	})
}
