// Package pdf renders tenant-facing settlement letters.
package pdf

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	settlementdomain "github.com/mietwerklabs/mietwerk/internal/settlement/domain"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// SettlementLetter renders one Betriebskostenabrechnung as a PDF.
func (r *Renderer) SettlementLetter(st settlementdomain.Statement) ([]byte, error) {
	cfg := marotoconfig.NewBuilder().
		WithLeftMargin(20).
		WithRightMargin(20).
		WithTopMargin(20).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, "Betriebskostenabrechnung",
		props.Text{Style: fontstyle.Bold, Size: 16}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Abrechnungszeitraum: %s bis %s",
		st.PeriodStart.Format("02.01.2006"), st.PeriodEnd.Format("02.01.2006")),
		props.Text{Size: 10}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Mieter: %s", st.TenantName),
		props.Text{Size: 10}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Wohneinheit: %s", st.UnitName),
		props.Text{Size: 10}))
	m.AddRow(6, text.NewCol(12, "", props.Text{}))

	addLine := func(label string, cents int64, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			text.NewCol(8, label, props.Text{Size: 10, Style: style}),
			text.NewCol(4, formatEuros(cents)+" EUR",
				props.Text{Size: 10, Style: style, Align: align.Right}),
		)
	}

	addLine("Betriebskosten (umlagefähig)", st.Result.OperatingCostShareCents, false)
	addLine("Heizkosten", st.Result.HeatingCostShareCents, false)
	addLine("Direkt zugeordnete Kosten", st.Result.DirectCostsTotalCents, false)
	addLine("Gesamtkosten", st.Result.TotalCostShareCents, true)
	addLine("Geleistete Vorauszahlungen", st.Result.PrepaymentTotalCents, false)

	balanceLabel := "Guthaben"
	if st.Result.BalanceCents < 0 {
		balanceLabel = "Nachzahlung"
	}
	addLine(balanceLabel, st.Result.BalanceCents, true)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func formatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "," + fmt.Sprintf("%02d", cents%100)
}
