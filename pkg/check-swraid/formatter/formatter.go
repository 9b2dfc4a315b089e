package formatter

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hwameistor/check-swraid/pkg/probe"
)

// ParameterTableLineLength the number of key/value pairs on each line of a parameter table
const ParameterTableLineLength = 3

type Parameter struct {
	Key   interface{}
	Value interface{}
}

func buildDefaultTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)

	t.Style().Format.Header = text.FormatDefault
	return t
}

// PrintParameters renders key/value pairs, ParameterTableLineLength pairs per row
func PrintParameters(out io.Writer, title string, parameters []Parameter) {
	t := buildDefaultTable(out)

	if title != "" {
		t.SetTitle(title)
	}

	length := len(parameters) / ParameterTableLineLength
	if len(parameters)%ParameterTableLineLength != 0 {
		length++
	}
	rows := make([]table.Row, length)

	for i, parameter := range parameters {
		row := i / ParameterTableLineLength
		rows[row] = append(rows[row], parameter.Key, parameter.Value)
	}
	t.AppendRows(rows)
	t.Render()
}

// PrintArrays renders what was read and concluded for every array
func PrintArrays(out io.Writer, observations []probe.Observation) {
	t := buildDefaultTable(out)
	t.Style().Options.SeparateRows = true

	t.SetTitle("md arrays")
	t.AppendHeader(table.Row{"Array", "Output", "State", "Status"})
	for _, o := range observations {
		t.AppendRow(table.Row{o.Status.Array, o.Status.Token, o.Status.State, o.Finding.Status})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(observations)})
	t.Render()
}
