package invoice

import (
	"html/template"
	"io"
	"strings"
)

var documentTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Invoice.Number}}</title>
<style>
body{font-family:Arial,Helvetica,sans-serif;font-size:12px;margin:24px;color:#222}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #999;padding:4px 6px;vertical-align:top}
th{background:#f0f0f0;text-align:left}
td.num{text-align:right;white-space:nowrap}
.head td{border:none}
.draft{color:#b00;font-weight:bold}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if eq .Invoice.Status "draft"}}<p class="draft">Not valid for payment until finalized</p>{{end}}
<table class="head">
<tr>
<td>
<strong>{{.Seller.Name}}</strong><br>
{{join .Seller.AddressLines ", "}}<br>
{{if .Seller.GSTIN}}GSTIN: {{.Seller.GSTIN}}<br>{{end}}
{{if .Seller.PAN}}PAN: {{.Seller.PAN}}<br>{{end}}
{{if .Seller.Email}}{{.Seller.Email}} {{end}}{{if .Seller.Phone}}{{.Seller.Phone}}{{end}}
</td>
<td>
Invoice No: <strong>{{.Invoice.Number}}</strong><br>
Invoice Date: {{.Invoice.InvoiceDate}}<br>
Due Date: {{.Invoice.DueDate}}<br>
Place of Supply: {{.Invoice.PlaceOfSupply}}<br>
Exchange Rate: 1 USD = {{.Invoice.FxRate}} INR
</td>
</tr>
</table>
<h3>Bill To</h3>
<p>
<strong>{{.Invoice.CustomerName}}</strong><br>
{{if .Invoice.CustomerGSTIN}}GSTIN: {{.Invoice.CustomerGSTIN}}<br>{{end}}
{{if .Invoice.State}}State: {{.Invoice.State}} ({{.Invoice.StateCode}}){{end}}
</p>
<table>
<thead>
<tr><th>#</th><th>Description</th><th>HSN/SAC</th><th>Qty</th><th>Unit</th><th>Rate</th><th>IGST %</th><th>Taxable (INR)</th><th>IGST (INR)</th><th>Total (INR)</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr>
<td>{{.Position}}</td><td>{{.Description}}</td><td>{{.HSNSAC}}</td><td class="num">{{.Quantity}}</td><td>{{.Unit}}</td>
<td class="num">{{.Rate}}</td><td class="num">{{.TaxPercent}}</td><td class="num">{{.TaxableINR}}</td><td class="num">{{.TaxINR}}</td><td class="num">{{.TotalINR}}</td>
</tr>
{{end}}</tbody>
</table>
<table style="width:50%;margin-left:50%;margin-top:12px">
{{range .Totals}}<tr><td>{{.Label}}</td><td class="num">{{.INR}}</td><td class="num">{{.USD}}</td></tr>
{{end}}<tr><th>Grand Total</th><th class="num">{{.GrandINR}}</th><th class="num">{{.GrandUSD}}</th></tr>
</table>
<p>Amount in words: <strong>{{.AmountWords}}</strong></p>
{{if .Seller.BankName}}<p>Bank: {{.Seller.BankName}}, A/C {{.Seller.AccountNumber}}, IFSC {{.Seller.IFSC}}</p>{{end}}
</body>
</html>
`))

// RenderHTML writes the printable tax invoice for inv. Figures are the stored
// values, rounded for display only.
func RenderHTML(w io.Writer, seller Seller, inv Invoice) error {
	return documentTemplate.Execute(w, newDocument(seller, inv))
}
