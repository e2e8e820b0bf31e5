package csv

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// RenderString writes rows as delimited text that tokenizes back to the
// same rows.
//
// Rows end with "\r\n". Quotes are always doubled: a doubled quote reads as
// one literal quote in or out of a quoted cell. A cell is wrapped in quotes
// only when it contains the delimiter or a line break.
// Two kinds of input do not survive a round trip: rows whose cells are all
// blank (the tokenizer drops them) and cells with bare "\n" or "\r" line
// breaks, which come back as "\r\n".
//
// Example:
//
//	out, _ := csv.RenderString([][]string{{"a", "b,c"}}, csv.Comma)
//	// out: a,"b,c"\r\n
func RenderString(sheet [][]string, d Delimiter) (string, error) {
	if d == Auto || !d.valid() {
		return "", &OptionsError{Field: "Delimiter", Message: "rendering needs an explicit delimiter"}
	}

	delim := d.Rune()
	var sb strings.Builder
	for _, row := range sheet {
		for i, cell := range row {
			if i > 0 {
				sb.WriteRune(delim)
			}
			writeCell(&sb, cell, delim)
		}
		sb.WriteString(tokenizer.LineBreak)
	}
	return sb.String(), nil
}

// Render converts an AST produced by SheetToNode to delimited text.
func Render(node ast.SchemaNode, d Delimiter) (string, error) {
	sheet, err := NodeToSheet(node)
	if err != nil {
		return "", err
	}
	return RenderString(sheet, d)
}

func writeCell(sb *strings.Builder, cell string, delim rune) {
	escaped := strings.ReplaceAll(cell, `"`, `""`)
	if !strings.ContainsRune(cell, delim) && !strings.ContainsAny(cell, "\r\n") {
		sb.WriteString(escaped)
		return
	}

	sb.WriteByte(tokenizer.Quote)
	sb.WriteString(escaped)
	sb.WriteByte(tokenizer.Quote)
}
