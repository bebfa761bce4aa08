// Package main provides the chartkit CLI: it renders one chart from a
// parameters file and converts CSV or XLSX data into JSON rows.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ankek/terraform-provider-chartkit/internal/config"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/generator"
)

// version is set by the release build; "dev" for local builds.
var version = "dev"

var errNoParams = errors.New("No parameters file provided!")

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, generator.NewLogger()))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, logger hclog.Logger) int {
	root := newRootCmd(logger)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errNoParams) {
			fmt.Fprintln(stderr, err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(logger hclog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartkit [params-file]",
		Short: "Render a chart from a parameters file",
		Long: `chartkit renders a boxplot, scatter, line, bar, histogram, violin, density,
heatmap, ridgeline or pie chart from a JSON, CSV or XLSX data file.

The parameters file is JSON (or HCL when it ends in .hcl) and names the chart
type, the data file, the output image and the columns to plot.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoParams
			}
			return renderChart(cmd, args[0], logger)
		},
	}

	rootCmd.AddCommand(newConvertCmd(), newVersionCmd())
	return rootCmd
}

func renderChart(cmd *cobra.Command, paramsPath string, logger hclog.Logger) error {
	params, err := config.Load(paramsPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded parameters", "path", paramsPath, "chart_type", params.ChartType)

	result, err := generator.New(logger).Generate(cmd.Context(), *params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Chart created successfully: %s\n", result.OutputPath)
	return nil
}

func newConvertCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "convert [input.csv|input.xlsx]",
		Short: "Convert a CSV or XLSX file into a JSON array of rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dataset.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outputPath == "" {
				return dataset.EncodeJSON(cmd.OutOrStdout(), table, pretty)
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			if err := dataset.EncodeJSON(f, table, pretty); err != nil {
				f.Close()
				return fmt.Errorf("failed to write output: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d rows: %s\n", table.Len(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chartkit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chartkit %s\n", version)
		},
	}
}
