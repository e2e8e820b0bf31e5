package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// SheetToNode converts rows to Shape's unified AST:
//   - the sheet becomes an *ast.ArrayDataNode of rows
//   - each row becomes an *ast.ArrayDataNode of cells
//   - each cell becomes an *ast.LiteralNode holding a string
//
// Example:
//
//	rows, _ := csv.ParseString("name,age\nAlice,30", csv.DefaultParseOptions())
//	node := csv.SheetToNode(rows)
func SheetToNode(sheet [][]string) ast.SchemaNode {
	pos := ast.ZeroPosition()
	rows := make([]ast.SchemaNode, len(sheet))
	for i, row := range sheet {
		rows[i] = rowToNode(row, pos)
	}
	return ast.NewArrayDataNode(rows, pos)
}

func rowToNode(row []string, pos ast.Position) *ast.ArrayDataNode {
	cells := make([]ast.SchemaNode, len(row))
	for i, cell := range row {
		cells[i] = ast.NewLiteralNode(cell, pos)
	}
	return ast.NewArrayDataNode(cells, pos)
}

// NodeToSheet converts an AST produced by SheetToNode (or any array of arrays
// of literals) back to rows. Non-string literal values are formatted with %v.
func NodeToSheet(node ast.SchemaNode) ([][]string, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("csv: expected *ast.ArrayDataNode, got %T", node)
	}

	elements := arr.Elements()
	sheet := make([][]string, len(elements))
	for i, elem := range elements {
		rowNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("csv: row %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		row, err := nodeToRow(rowNode)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", i, err)
		}
		sheet[i] = row
	}
	return sheet, nil
}

func nodeToRow(node *ast.ArrayDataNode) ([]string, error) {
	elements := node.Elements()
	row := make([]string, len(elements))
	for i, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("cell %d: expected *ast.LiteralNode, got %T", i, elem)
		}
		switch v := lit.Value().(type) {
		case string:
			row[i] = v
		case nil:
			row[i] = ""
		default:
			row[i] = fmt.Sprintf("%v", v)
		}
	}
	return row, nil
}

// ParseNode parses text like ParseString and returns the rows as an AST.
func ParseNode(data string, opts ParseOptions) (ast.SchemaNode, error) {
	rows, err := ParseString(data, opts)
	if err != nil {
		return nil, err
	}
	return SheetToNode(rows), nil
}
