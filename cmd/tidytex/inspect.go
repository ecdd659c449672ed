package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/tidytex/internal/observability"
	"github.com/jonathan/tidytex/internal/rendering"
	"github.com/jonathan/tidytex/internal/schemas"
	"github.com/jonathan/tidytex/internal/yamlutil"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [resume.ini|-]",
	Short: "Show how each section of a resume will be rendered",
	Long:  "Prints every section with its kind, group, and whether a title is emitted, as a box, JSON, or YAML.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

var (
	inspectIniFile      string
	inspectFormat       string
	inspectStrictGroups bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectIniFile, "ini", "i", "", "Path to the resume INI file")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "box", "Output format: box, json or yaml")
	inspectCmd.Flags().BoolVar(&inspectStrictGroups, "strict-groups", false, "Fail on continuation sections that do not follow their group")

	rootCmd.AddCommand(inspectCmd)
}

// sectionView is the serialized form of a planned section.
type sectionView struct {
	ID     string            `json:"id" yaml:"id"`
	Kind   string            `json:"kind" yaml:"kind"`
	Group  string            `json:"group" yaml:"group"`
	Index  int               `json:"index,omitempty" yaml:"index,omitempty"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Orphan bool              `json:"orphan,omitempty" yaml:"orphan,omitempty"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

type documentView struct {
	Source   string        `json:"source" yaml:"source"`
	Sections []sectionView `json:"sections" yaml:"sections"`
}

func newDocumentView(source string, plans []rendering.SectionPlan) documentView {
	view := documentView{Source: source, Sections: make([]sectionView, 0, len(plans))}
	for _, p := range plans {
		sv := sectionView{
			ID:     p.Record.ID,
			Kind:   p.Kind.String(),
			Group:  p.Identifier.Base,
			Index:  p.Identifier.Index,
			Orphan: p.Orphan,
			Fields: make(map[string]string, p.Record.Len()),
		}
		if p.ShowTitle {
			sv.Title = p.Identifier.Title()
		}
		for _, f := range p.Record.Fields {
			sv.Fields[f.Key] = f.Value
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func runInspect(cmd *cobra.Command, args []string) error {
	input, err := singleInput(inspectIniFile, args)
	if err != nil {
		return err
	}

	s := current
	doc, err := readDocument(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	plans, err := rendering.Plan(doc, s.cfg.StrictGroups, s.logger.With("input", input))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch inspectFormat {
	case "box":
		observability.NewPrinter(out).PrintDocument(input, plans)
		return nil
	case "json":
		data, err := json.MarshalIndent(newDocumentView(input, plans), "", "  ")
		if err != nil {
			return err
		}
		if err := schemas.ValidateDocumentJSON(string(data)); err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	case "yaml":
		data, err := yamlutil.Marshal(newDocumentView(input, plans))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return &UsageError{Message: "unknown --format " + inspectFormat + ": use box, json or yaml"}
	}
}
