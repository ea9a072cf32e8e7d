package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/config"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/preset"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"

	// Register all rules via init()
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/all"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "perflint:", err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "perflint",
		Short:         "Static performance checks for JavaScript and TypeScript",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(listRulesCmd())
	root.AddCommand(listPresetsCmd())
	root.AddCommand(initConfigCmd())
	return root
}

func listRulesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List all available lint rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := rule.GlobalRegistry().All()
			slices.SortStableFunc(rules, func(a, b rule.Rule) int {
				return int(a.Category()) - int(b.Category())
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "RULE\tCATEGORY\tSEVERITY\tOPTIONS\tDESCRIPTION\n")
			for _, r := range rules {
				if category != "" && r.Category().String() != category {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.Name(), r.Category(), r.Severity(), describeOptions(r), r.Description())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list rules in this category")
	return cmd
}

func describeOptions(r rule.Rule) string {
	c, ok := r.(rule.Configurable)
	if !ok {
		return "-"
	}
	var parts []string
	for _, spec := range c.Schema() {
		parts = append(parts, fmt.Sprintf("%s=%v", spec.Key, spec.Default))
	}
	return strings.Join(parts, " ")
}

func listPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets a configuration can extend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, p := range preset.All() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s: %s\n", p.Name, p.Description)
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, name := range slices.Sorted(maps.Keys(p.Rules)) {
					s := p.Rules[name]
					line := fmt.Sprintf("  %s\t%s", name, s.Severity)
					if len(s.Options) > 0 {
						line += fmt.Sprintf("\t%v", map[string]any(s.Options))
					}
					fmt.Fprintln(tw, line)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a default .perflint.yml config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			fs := osfs.New(dir)
			const path = ".perflint.yml"
			if err := config.WriteDefault(fs, path); err != nil {
				if errors.Is(err, os.ErrExist) {
					return fmt.Errorf("%s already exists; remove it first", fs.Join(dir, path))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with default configuration.\n", fs.Join(dir, path))
			return nil
		},
	}
}
