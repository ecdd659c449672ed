package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/tidytex/internal/rendering"
	"github.com/jonathan/tidytex/internal/typeset"
)

var texCmd = &cobra.Command{
	Use:   "tex [resume.ini|-]",
	Short: "Render an INI resume to LaTeX markup without typesetting",
	Long:  "Writes the LaTeX markup for a resume to standard output, or to --out. Use - to read the resume from standard input.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTex,
}

var (
	texIniFile      string
	texStyle        string
	texOutFile      string
	texFontSize     string
	texStrictGroups bool
)

func init() {
	texCmd.Flags().StringVarP(&texIniFile, "ini", "i", "", "Path to the resume INI file")
	texCmd.Flags().StringVarP(&texStyle, "sty", "s", rendering.DefaultStyle, "LaTeX style resource")
	texCmd.Flags().StringVarP(&texOutFile, "out", "o", "", "Path to the output .tex file (default: stdout)")
	texCmd.Flags().StringVar(&texFontSize, "font-size", rendering.DefaultFontSize, "Document font size: 10pt, 11pt or 12pt")
	texCmd.Flags().BoolVar(&texStrictGroups, "strict-groups", false, "Fail on continuation sections that do not follow their group")

	rootCmd.AddCommand(texCmd)
}

func runTex(cmd *cobra.Command, args []string) error {
	input, err := singleInput(texIniFile, args)
	if err != nil {
		return err
	}

	s := current
	doc, err := readDocument(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	markup, err := rendering.RenderDocument(doc, rendering.Options{
		FontSize:     s.cfg.FontSize,
		Style:        s.cfg.Style,
		StrictGroups: s.cfg.StrictGroups,
		Logger:       s.logger.With("input", input),
	})
	if err != nil {
		return err
	}

	if texOutFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), markup)
		return err
	}
	if err := typeset.WriteMarkup(texOutFile, markup); err != nil {
		return err
	}
	s.logger.Info("wrote markup", "tex", texOutFile, "blake3", typeset.Fingerprint(markup))
	return nil
}
