package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"cayley/internal/algebra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// textWriter is implemented by views with a human-readable rendering.
type textWriter interface {
	writeText(w io.Writer) error
}

func render(w io.Writer, format string, v textWriter) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return v.writeText(w)
	}
}

type groupView struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Identity    string              `json:"identity" yaml:"identity"`
	Members     []string            `json:"members" yaml:"members"`
	CayleyTable [][]string          `json:"cayleyTable" yaml:"cayleyTable"`
	CycleGroups map[string][]string `json:"cycleGroups,omitempty" yaml:"cycleGroups,omitempty"`
}

func newGroupView(g *algebra.Group) groupView {
	return groupView{
		Name:        g.Name,
		Description: g.Description,
		Identity:    g.Identity,
		Members:     g.Members,
		CayleyTable: g.Table,
		CycleGroups: g.CycleGroups,
	}
}

func (v groupView) writeText(w io.Writer) error {
	fmt.Fprintf(w, "%s  %s\n\n", v.Name, v.Description)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "∘\t")
	for _, m := range v.Members {
		fmt.Fprintf(tw, "%s\t", algebra.FormatLabel(m))
	}
	fmt.Fprintln(tw)
	for i, row := range v.CayleyTable {
		fmt.Fprintf(tw, "%s\t", algebra.FormatLabel(v.Members[i]))
		for _, cell := range row {
			fmt.Fprintf(tw, "%s\t", algebra.FormatLabel(cell))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

type traceView struct {
	Steps []algebra.Step       `json:"steps" yaml:"steps"`
	Final string               `json:"final" yaml:"final"`
	State algebra.StepperState `json:"state" yaml:"state"`
}

func newTraceView(t *algebra.Trace) traceView {
	return traceView{Steps: t.Steps, Final: t.Final, State: t.State}
}

func (v traceView) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tLEFT\tRIGHT\tVALUE")
	for _, st := range v.Steps {
		value := algebra.FormatLabel(st.Value)
		if st.Error {
			value += "  (invalid)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.Step, algebra.FormatLabel(st.Left), algebra.FormatLabel(st.Right), value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nresult: %s (%s)\n", algebra.FormatLabel(v.Final), v.State)
	return err
}

type cycleClass struct {
	Type    string   `json:"type" yaml:"type"`
	Color   string   `json:"color" yaml:"color"`
	Members []string `json:"members" yaml:"members"`
}

type classesView struct {
	Classes []cycleClass `json:"classes" yaml:"classes"`
}

func newClassesView(cc *algebra.CycleClassification) classesView {
	out := classesView{Classes: make([]cycleClass, 0, len(cc.Signatures))}
	for _, sig := range cc.Signatures {
		out.Classes = append(out.Classes, cycleClass{
			Type:    sig,
			Color:   algebra.SignatureColor(sig),
			Members: cc.Groups[sig],
		})
	}
	return out
}

func (v classesView) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCOUNT\tMEMBERS")
	for _, c := range v.Classes {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Type, len(c.Members), strings.Join(c.Members, " "))
	}
	return tw.Flush()
}

type verticesView struct {
	Group     string `json:"group" yaml:"group"`
	Element   string `json:"element" yaml:"element"`
	Label     string `json:"label" yaml:"label"`
	Positions []int  `json:"positions" yaml:"positions"`
}

func (v verticesView) writeText(w io.Writer) error {
	fmt.Fprintf(w, "%s in %s\n", v.Label, v.Group)
	for from, to := range v.Positions {
		fmt.Fprintf(w, "  %d -> %d\n", from, to)
	}
	return nil
}
