package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
)

// none is printed in place of an absent value. Absent is not zero.
const none = "-"

// document accumulates the markdown output of a renderer.
type document struct {
	*strings.Builder
}

func newDocument() *document { return &document{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the document.
func (d *document) Printf(format string, args ...any) {
	fmt.Fprintf(d, format, args...)
}

// Table prints a table header. Alignments are "l" or "r", one per column.
func (d *document) Table(align string, header ...string) {
	d.Printf("| %s |\n|", strings.Join(header, " | "))
	for i := range header {
		if i < len(align) && align[i] == 'l' {
			d.Printf(":---|")
		} else {
			d.Printf("---:|")
		}
	}
	d.Printf("\n")
}

// Row prints a table row.
func (d *document) Row(cells ...string) {
	d.Printf("| %s |\n", strings.Join(cells, " | "))
}

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// percent formats an optional percent.
func percent(p *snowball.Percent) string {
	if p == nil {
		return none
	}
	return p.String()
}

// signed formats an optional percent with its sign.
func signed(p *snowball.Percent) string {
	if p == nil {
		return none
	}
	return p.SignedString()
}

// escape makes s safe inside a table cell.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
