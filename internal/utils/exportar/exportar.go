// Package exportar grava listagens em CSV ou XLSX para download.
package exportar

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	FormatoCSV  = "csv"
	FormatoXLSX = "xlsx"
)

// Planilha é uma tabela simples: uma linha de cabeçalho e as linhas de dados
type Planilha struct {
	Nome      string
	Cabecalho []string
	Linhas    [][]any
}

// Formato lê ?formato= (csv por padrão) e devolve erro para valores desconhecidos
func Formato(r *http.Request) (string, error) {
	f := r.URL.Query().Get("formato")
	switch f {
	case "", FormatoCSV:
		return FormatoCSV, nil
	case FormatoXLSX:
		return FormatoXLSX, nil
	default:
		return "", fmt.Errorf("formato inválido: %s (use csv ou xlsx)", f)
	}
}

// Responder gera o arquivo no formato pedido e escreve como anexo
func Responder(w http.ResponseWriter, formato, arquivo string, p Planilha) error {
	var (
		b           []byte
		err         error
		contentType string
	)
	if formato == FormatoXLSX {
		b, err = XLSX(p)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	} else {
		b, err = CSV(p)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", arquivo, formato))
	_, err = w.Write(b)
	return err
}

// CSV usa ';' como separador, padrão das planilhas em pt-BR
func CSV(p Planilha) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	if err := writer.Write(p.Cabecalho); err != nil {
		return nil, err
	}
	for _, linha := range p.Linhas {
		row := make([]string, len(linha))
		for i, v := range linha {
			row[i] = texto(v)
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func XLSX(p Planilha) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := p.Nome
	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range p.Cabecalho {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return nil, err
		}
	}

	for r, linha := range p.Linhas {
		for c, v := range linha {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, valorCelula(v)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func valorCelula(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format("02/01/2006")
	case time.Time:
		return x.Format("02/01/2006")
	default:
		return v
	}
}

func texto(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.StringFixed(2)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format("2006-01-02")
	case time.Time:
		return x.Format("2006-01-02")
	case *uint:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	default:
		return fmt.Sprint(v)
	}
}
