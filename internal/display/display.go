package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Printer renders display models to its injected writers. Tables, panels and
// JSON go to out, status lines for humans go to errOut so they never corrupt
// machine-readable output.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", green("✓"), msg)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", red("✗"), msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", blue("ℹ"), msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", yellow("⚠"), msg)
}

// JSON writes the model as indented JSON. Decimal fields marshal as quoted
// fixed-point strings, never binary floats.
func (p *Printer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// FormatPrice renders a decimal as EUR currency with two fixed digits.
func FormatPrice(price decimal.Decimal) string {
	return "€" + price.StringFixed(2)
}
