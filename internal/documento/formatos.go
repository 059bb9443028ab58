package documento

import (
	"html/template"
	"strings"
	"time"

	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var impressora = message.NewPrinter(language.BrazilianPortuguese)

func paraFloat(v any) float64 {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.InexactFloat64()
	case *decimal.Decimal:
		if n == nil {
			return 0
		}
		return n.InexactFloat64()
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	}
	return 0
}

// Numero formata com separadores pt-BR: 1234.5 -> "1.234,50" (casas=2)
func Numero(v any, casas int) string {
	return impressora.Sprint(number.Decimal(paraFloat(v), number.Scale(casas)))
}

// Moeda formata em reais: "R$ 1.234,56"
func Moeda(v any) string {
	f := paraFloat(v)
	if f < 0 {
		return "-R$ " + Numero(-f, 2)
	}
	return "R$ " + Numero(f, 2)
}

// Data formata como 02/01/2006; zero e nil viram vazio
func Data(v any) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return ""
		}
		t = *d
	case utils.Data:
		t = d.Time
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func kwh(v any) string {
	return Numero(v, 0) + " kWh"
}

// CNPJ formata 14 dígitos como 00.000.000/0000-00
func CNPJ(s string) string {
	d := utils.SomenteDigitos(s)
	if len(d) != 14 {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// documentoPessoa formata CPF ou CNPJ conforme o tamanho
func documentoPessoa(s string) string {
	d := utils.SomenteDigitos(s)
	if len(d) == 11 {
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
	return CNPJ(s)
}

var rotulos = map[string]string{
	"EmAndamento":      "Em andamento",
	"AguardandoPecas":  "Aguardando peças",
	"Concluida":        "Concluída",
	"avista":           "À vista",
	"entradaEParcelas": "Entrada e parcelas",
	"parcelasIguais":   "Parcelas iguais",
	"dividirEmDuas":    "Dividido em duas",
	"servico":          "Serviço",
	"peca":             "Peça",
}

var titulo = cases.Title(language.BrazilianPortuguese)

// rotulo traduz códigos internos para o texto impresso
func rotulo(s string) string {
	if r, ok := rotulos[s]; ok {
		return r
	}
	return titulo.String(strings.ToLower(s))
}

func funcoes() template.FuncMap {
	return template.FuncMap{
		"moeda":     Moeda,
		"data":      Data,
		"numero":    Numero,
		"kwh":       kwh,
		"cnpj":      CNPJ,
		"documento": documentoPessoa,
		"rotulo":    rotulo,
		"mes": func(m int) string {
			if m < 1 || m > 12 {
				return ""
			}
			return meses[m-1]
		},
		"logo": func(s string) template.URL {
			if !strings.HasPrefix(s, "data:image/") {
				return ""
			}
			return template.URL(s)
		},
	}
}

var meses = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
