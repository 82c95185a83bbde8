// Package pdf renders invoices into the fixed document layout: a header with
// the invoice number and date, the line-item table, and the totals summary.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/invoicegen/internal/models"
)

// currencySymbol prefixes every amount. The core PDF fonts cannot encode the
// rupee sign, so the romanized form is used.
const currencySymbol = "Rs."

// Item is one rendered table row.
type Item struct {
	Name     string
	Quantity float64
	Rate     float64
	Total    float64
}

// Data is everything the layout needs; rendering is a pure function of it.
type Data struct {
	Number     string
	Date       time.Time
	Items      []Item
	Subtotal   float64
	Tax        float64
	GrandTotal float64
}

// FromInvoice maps a persisted invoice onto the render input.
func FromInvoice(inv models.Invoice) Data {
	d := Data{
		Number:     inv.Number,
		Date:       inv.CreatedAt,
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		GrandTotal: inv.GrandTotal,
	}
	for _, it := range inv.Items {
		d.Items = append(d.Items, Item{Name: it.Name, Quantity: it.Quantity, Rate: it.Rate, Total: it.Total})
	}
	return d
}

// Money formats an amount with the fixed currency symbol and two decimals.
func Money(v float64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, v)
}

// Render produces the PDF bytes for one invoice.
func Render(d Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	// Header
	m.AddRow(12, text.NewCol(12, "INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(7, text.NewCol(12, d.Number, props.Text{Size: 12, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, "Date: "+d.Date.Format("02 Jan 2006"), props.Text{Size: 10, Align: align.Center}))
	m.AddRow(6, line.NewCol(12, props.Line{SizePercent: 100}))

	// Line-item table
	headerStyle := props.Text{Size: 10, Style: fontstyle.Bold}
	m.AddRow(8,
		text.NewCol(6, "Product", headerStyle),
		text.NewCol(2, "Quantity", alignRight(headerStyle)),
		text.NewCol(2, "Rate", alignRight(headerStyle)),
		text.NewCol(2, "Total", alignRight(headerStyle)),
	)
	cellStyle := props.Text{Size: 10}
	for _, it := range d.Items {
		m.AddRow(7,
			text.NewCol(6, it.Name, cellStyle),
			text.NewCol(2, fmt.Sprintf("%g", it.Quantity), alignRight(cellStyle)),
			text.NewCol(2, Money(it.Rate), alignRight(cellStyle)),
			text.NewCol(2, Money(it.Total), alignRight(cellStyle)),
		)
	}
	m.AddRow(6, line.NewCol(12, props.Line{SizePercent: 100}))

	// Summary
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Subtotal", alignRight(cellStyle)),
		text.NewCol(2, Money(d.Subtotal), alignRight(cellStyle)),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "GST (18%)", alignRight(cellStyle)),
		text.NewCol(2, Money(d.Tax), alignRight(cellStyle)),
	)
	totalStyle := props.Text{Size: 11, Style: fontstyle.Bold}
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Grand Total", alignRight(totalStyle)),
		text.NewCol(2, Money(d.GrandTotal), alignRight(totalStyle)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func alignRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}
