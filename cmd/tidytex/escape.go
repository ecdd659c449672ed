package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/tidytex/internal/rendering"
)

var escapeCmd = &cobra.Command{
	Use:   "escape [text...]",
	Short: "Escape text for LaTeX the way resume values are escaped",
	Long:  "Escapes the arguments, joined by spaces, or standard input when no arguments are given.",
	RunE:  runEscape,
}

var escapeListRules bool

func init() {
	escapeCmd.Flags().BoolVar(&escapeListRules, "rules", false, "List the escaping rules in the order they are applied")

	rootCmd.AddCommand(escapeCmd)
}

func runEscape(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if escapeListRules {
		for i, rule := range rendering.EscapeRules() {
			if _, err := fmt.Fprintf(out, "%2d. %-14s %s\n", i+1, rule.Name, rule.Pattern); err != nil {
				return err
			}
		}
		return nil
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		text = strings.TrimSuffix(string(data), "\n")
	}
	_, err := fmt.Fprintln(out, rendering.Escape(text))
	return err
}
