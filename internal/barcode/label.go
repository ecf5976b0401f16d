package barcode

import (
	"html/template"
	"io"
	"time"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
)

// LabelData is everything one printed label needs.
type LabelData struct {
	ProductName    string
	VendorName     string
	Price          string
	Code           string
	ProductionDate string
	ExpiryDate     string
	Prefs          LayoutPrefs
}

const dateLayout = "02/01/2006"

var labelTemplate = template.Must(template.New("label").Parse(`<div class="label" style="width:{{.Prefs.LabelWidth}}mm;height:{{.Prefs.LabelHeight}}mm;padding:{{.Prefs.Margin}}mm;line-height:{{.Prefs.LineSpacing}}">
  <p class="name" style="font-size:{{.Prefs.NameFontSize}}pt">{{.ProductName}}</p>
  {{- if .VendorName}}
  <p class="vendor">{{.VendorName}}</p>
  {{- end}}
  <p class="price" style="font-size:{{.Prefs.PriceFontSize}}pt">{{.Price}} OMR</p>
  {{- if .ProductionDate}}
  <p class="dates">PRD {{.ProductionDate}}{{if .ExpiryDate}} / EXP {{.ExpiryDate}}{{end}}</p>
  {{- end}}
  <p class="code" style="font-size:{{.Prefs.CodeFontSize}}pt">{{.Code}}</p>
</div>
`))

// BuildLabelData assembles the print payload for a product. The code is
// regenerated from the product id when the product carries none.
func BuildLabelData(product *models.Product, prefs LayoutPrefs) LabelData {
	code := product.Barcode
	if code == "" {
		code = Generate(product.ID.String())
	}
	data := LabelData{
		ProductName: product.Name,
		Price:       product.Price.StringFixed(3),
		Code:        code,
		Prefs:       prefs,
	}
	if product.VendorName != nil {
		data.VendorName = *product.VendorName
	}
	data.ProductionDate = formatDate(product.ProductionDate)
	data.ExpiryDate = formatDate(product.ExpiryDate)
	return data
}

// RenderLabel writes the printable label markup.
func RenderLabel(w io.Writer, data LabelData) error {
	return labelTemplate.Execute(w, data)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
