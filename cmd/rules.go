package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hackerhouse/hhboard/internal/output"
	"github.com/hackerhouse/hhboard/internal/ruleset"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

var (
	rulesCategory string
	rulesExport   bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the scoring rule table",
	Long: `Show the keyword rules, category defaults, evidence bonuses and the
per-activity cap in effect.

With --rules the table is loaded from a YAML override file; --export prints
the table in that file format so it can be used as a starting point.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRules(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rulesCmd.Flags().StringVarP(&rulesCategory, "category", "c", "", "Only show rules for this category")
	rulesCmd.Flags().BoolVar(&rulesExport, "export", false, "Print the table as a YAML rule-set file")
	rootCmd.AddCommand(rulesCmd)
}

func runRules() error {
	s, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	if rulesExport {
		content, err := ruleset.Export(s.table)
		if err != nil {
			return err
		}
		if s.cfg.Output != "" {
			if err := os.WriteFile(s.cfg.Output, content, 0644); err != nil {
				return fmt.Errorf("error writing to file %s: %w", s.cfg.Output, err)
			}
			return nil
		}
		_, err = stdout.Write(content)
		return err
	}

	category := scoring.CategoryUnknown
	if rulesCategory != "" {
		category = scoring.ParseCategory(rulesCategory)
		if !category.Known() {
			return fmt.Errorf("unknown category %q (want one of code, biz, content, design, misc)", rulesCategory)
		}
	}

	report := &output.RulesReport{
		Category: category,
		Rules:    s.table.Rules(category),
		Evidence: scoring.EvidenceRules(),
		Cap:      s.table.Cap(),
	}
	for _, c := range scoring.Categories() {
		report.Defaults = append(report.Defaults, output.CategoryPoints{Category: c, Points: s.table.DefaultPoints(c)})
	}

	if err := s.formatter.Rules(report); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
