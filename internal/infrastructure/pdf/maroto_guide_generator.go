// Package pdf implementa la generación de la Guía de Distribución que
// acompaña cada traslado despachado hacia los puntos de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Guía de Distribución  │  N° Traslado + Fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: depósito primario (planta)                          │
//	│  DESTINO: depósito que distribuyó                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lote | Cantidad | Peso (kg)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTA DIRECTA: lotes desviados en ruta (si los hay)         │
//	│  TOTALES: unidades trasladadas / peso total                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var gramsPerKilo = decimal.NewFromInt(1000)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGuideGenerator implementa transfer.GuideGenerator usando Maroto v2.
type MarotoGuideGenerator struct{}

// NewMarotoGuideGenerator construye el generador.
func NewMarotoGuideGenerator() *MarotoGuideGenerator { return &MarotoGuideGenerator{} }

// GenerateGuide genera el PDF de la guía y devuelve sus bytes.
func (g *MarotoGuideGenerator) GenerateGuide(
	_ context.Context,
	t *entity.Transfer,
	from, to *entity.Depot,
	product *entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Distribución", true).
		WithAuthor(from.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(depotRow("ORIGEN", from))
	m.AddRows(depotRow("DESTINO", to))
	m.AddRows(productRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de lotes trasladados
	m.AddRows(tableHeaderRow())
	for _, r := range lotRows(t.Lots, product.UnitWeightGrams) {
		m.AddRows(r)
	}

	// Venta directa en ruta
	if len(t.DirectSales) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("VENTA DIRECTA EN RUTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)))
		for _, r := range lotRows(t.DirectSales, product.UnitWeightGrams) {
			m.AddRows(r)
		}
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(t, product.UnitWeightGrams))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y número de traslado + fechas (der).
func headerRow(t *entity.Transfer) core.Row {
	fechaSalida := t.CreatedAt.Format("02/01/2006")
	fechaEntrega := "—"
	if t.DistributedAt != nil {
		fechaEntrega = t.DistributedAt.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("GUÍA DE DISTRIBUCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Soporte de traslado de producto terminado", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRASLADO N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(t.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Salida: %s   Entrega: %s", fechaSalida, fechaEntrega), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// depotRow: una línea de origen o destino.
func depotRow(label string, d *entity.Depot) core.Row {
	return row.New(11).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s", d.Name, d.Type, nonEmpty(d.City, "—")),
				props.Text{Size: 9, Top: 6}),
		),
	)
}

// productRow: producto trasladado y su peso unitario.
func productRow(p *entity.Product) core.Row {
	return row.New(11).Add(
		col.New(12).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s g/unidad", p.Name, p.UnitWeightGrams.StringFixed(1)),
				props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de lotes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lote", 6, align.Left),
		h("Cantidad", 3, align.Right),
		h("Peso (kg)", 3, align.Right),
	)
}

// lotRows: una fila por lote con su peso calculado.
func lotRows(lots []entity.TransferLot, unitWeight decimal.Decimal) []core.Row {
	result := make([]core.Row, 0, len(lots))
	for _, l := range lots {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				l.Lote,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%d", l.Cantidad),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				lotWeightKg(l.Cantidad, unitWeight).StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades y peso total del traslado.
func totalsRow(t *entity.Transfer, unitWeight decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(16).Add(
		col.New(4),
		col.New(4).Add(
			label("Unidades trasladadas:"),
			label("Peso total:"),
		),
		col.New(4).Add(
			grandValue(fmt.Sprintf("%d", t.TotalQuantity)),
			grandValue(lotWeightKg(t.TotalQuantity, unitWeight).StringFixed(2)+" kg"),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// lotWeightKg calcula el peso de qty unidades en kilogramos.
func lotWeightKg(qty int64, unitWeightGrams decimal.Decimal) decimal.Decimal {
	return unitWeightGrams.Mul(decimal.NewFromInt(qty)).Div(gramsPerKilo)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
