package document

import (
	"strings"
	"testing"
)

const sampleFiling = `
<html><head><style>p { color: black; }</style></head><body>
<p>Quarterly report pursuant to Section 13.</p>
<p>Net income $1,234 for the thirteen weeks ended.</p>
<table>
  <tr><th>Line item</th><th>Q2 2024</th><th>Q2 2023</th></tr>
  <tr><td>Net income</td><td>$ 13,485</td><td>$ 6,750</td></tr>
  <tr><td>Weighted average shares</td><td>10,500,000</td><td>10,300,000</td></tr>
</table>
<table><tr><td>Exhibit index</td></tr></table>
</body></html>`

func TestFlatten(t *testing.T) {
	doc, err := Flatten(sampleFiling)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	t.Run("Tables in document order", func(t *testing.T) {
		if len(doc.Tables) != 2 {
			t.Fatalf("table count = %d, want 2", len(doc.Tables))
		}
		if len(doc.Tables[0].Rows) != 3 {
			t.Fatalf("first table rows = %d, want 3", len(doc.Tables[0].Rows))
		}
		row := doc.Tables[0].Rows[1]
		if row[0] != "Net income" || row[1] != "$ 13,485" {
			t.Errorf("row = %v", row)
		}
	})

	t.Run("Raw text contains every cell up to whitespace", func(t *testing.T) {
		flat := anySpace.ReplaceAllString(doc.RawText, " ")
		for _, table := range doc.Tables {
			for _, row := range table.Rows {
				for _, cell := range row {
					if cell != "" && !strings.Contains(flat, cell) {
						t.Errorf("raw text missing cell %q", cell)
					}
				}
			}
		}
	})

	t.Run("Free text survives flattening", func(t *testing.T) {
		if !strings.Contains(doc.RawText, "Net income $1,234") {
			t.Errorf("raw text missing narrative sentence: %q", doc.RawText)
		}
	})

	t.Run("Style content dropped", func(t *testing.T) {
		if strings.Contains(doc.RawText, "color") {
			t.Errorf("style text leaked into raw text")
		}
	})
}

func TestFlatten_DegenerateInputs(t *testing.T) {
	t.Run("Empty table has zero rows, not nil document", func(t *testing.T) {
		doc, err := Flatten("<html><body><table></table></body></html>")
		if err != nil {
			t.Fatalf("Flatten returned error: %v", err)
		}
		if len(doc.Tables) != 1 {
			t.Fatalf("table count = %d, want 1", len(doc.Tables))
		}
		if len(doc.Tables[0].Rows) != 0 {
			t.Errorf("rows = %d, want 0", len(doc.Tables[0].Rows))
		}
	})

	t.Run("Wrapped cell collapses to one line but stays findable", func(t *testing.T) {
		doc, err := Flatten("<html><body><table><tr><td>Weighted average\n  shares outstanding</td><td>10,500,000</td></tr></table></body></html>")
		if err != nil {
			t.Fatalf("Flatten returned error: %v", err)
		}
		cell := doc.Tables[0].Rows[0][0]
		if cell != "Weighted average shares outstanding" {
			t.Errorf("cell = %q, want whitespace collapsed", cell)
		}
		flat := anySpace.ReplaceAllString(doc.RawText, " ")
		if !strings.Contains(flat, cell) {
			t.Errorf("normalized raw text %q missing cell %q", flat, cell)
		}
	})

	t.Run("Plain text passes through html parser", func(t *testing.T) {
		doc, err := Flatten("just a plain sentence with no markup")
		if err != nil {
			t.Fatalf("Flatten returned error: %v", err)
		}
		if !strings.Contains(doc.RawText, "plain sentence") {
			t.Errorf("raw text = %q", doc.RawText)
		}
	})
}

func TestFromText(t *testing.T) {
	doc := FromText("Net income 12")
	if doc.RawText != "Net income 12" {
		t.Errorf("RawText = %q", doc.RawText)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("Tables = %d, want 0", len(doc.Tables))
	}
}
