package preview

import (
	"embed"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

// ErrUnknownTemplate is returned when no template has the requested type.
var ErrUnknownTemplate = errors.New("unknown template type")

// Template describes one renderable preview.
type Template struct {
	Type        string         `json:"type" example:"order_confirmation"`
	Description string         `json:"description" example:"Order confirmation email"`
	Sample      map[string]any `json:"sample"`
}

var catalog = []Template{
	{
		Type:        "order_confirmation",
		Description: "Order confirmation email",
		Sample: map[string]any{
			"order_id":      "ORD-20260115-0001",
			"customer_name": "Budi",
			"items": []any{
				map[string]any{"name": "Gundam RX-78-2 MG", "qty": 1, "price": 650000},
				map[string]any{"name": "Nendoroid Miku", "qty": 2, "price": 725000},
			},
			"total": 2100000,
		},
	},
	{
		Type:        "payment_success",
		Description: "Payment received email",
		Sample: map[string]any{
			"order_id":  "ORD-20260115-0001",
			"amount":    2100000,
			"bank":      "bca",
			"va_number": "3901200000000001",
		},
	},
	{
		Type:        "welcome",
		Description: "New customer welcome email",
		Sample: map[string]any{
			"customer_name": "Budi",
			"voucher_code":  "FORZA10",
		},
	},
	{
		Type:        "storefront_home",
		Description: "Storefront home page",
		Sample: map[string]any{
			"products": []any{
				map[string]any{"name": "Figma Link", "price": 1150000},
				map[string]any{"name": "S.H.Figuarts Goku", "price": 890000},
			},
		},
	},
}

// Renderer renders preview templates with theme tokens.
type Renderer struct {
	templates map[string]*liquid.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()
	engine.RegisterFilter("rupiah", Rupiah)

	r := &Renderer{templates: make(map[string]*liquid.Template, len(catalog))}
	for _, t := range catalog {
		src, err := templateFS.ReadFile("templates/" + t.Type + ".liquid")
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", t.Type, err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse template %s: %w", t.Type, perr)
		}
		r.templates[t.Type] = tpl
	}
	return r, nil
}

// Templates lists the renderable types.
func (r *Renderer) Templates() []Template {
	return slices.Clone(catalog)
}

// Render executes the template for typ. Tokens are exposed as theme.<name>
// with the theme_ prefix dropped, and the projected stylesheet as css.
func (r *Renderer) Render(typ string, values map[string]any, tokens theme.Tokens) (string, error) {
	tpl, ok := r.templates[typ]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, typ)
	}

	bindings := make(liquid.Bindings, len(values)+2)
	for k, v := range values {
		bindings[k] = v
	}
	bindings["theme"] = themeBindings(tokens)

	in := theme.NewInjector(theme.NewDocument())
	in.Apply(tokens)
	bindings["css"] = in.Document().CSS()

	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", typ, err)
	}
	return out, nil
}

func themeBindings(tokens theme.Tokens) map[string]any {
	out := make(map[string]any, len(tokens))
	for k, v := range tokens {
		out[strings.TrimPrefix(k, "theme_")] = v
	}
	return out
}

// Rupiah formats an amount as Indonesian rupiah, e.g. "Rp 1.250.000".
func Rupiah(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
