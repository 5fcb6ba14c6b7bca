package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"electrician-pro/internal/series"
)

// circuitFile is the on-disk form of a circuit. JSON files are valid YAML.
type circuitFile struct {
	Components []series.Record `yaml:"components"`
	Totals     series.Record   `yaml:"totals"`
}

var solveJSON bool

var solveCmd = &cobra.Command{
	Use:   "solve <file>",
	Short: "Solve a series circuit described in a YAML or JSON file",
	Long: `Solve reads a circuit file and prints every component with the values
that could be derived. Use "-" to read from standard input.

Example file:
  components:
    - voltage: 12
      resistance: 4
    - resistance: 2
  totals:
    current: ""

Only the total current is used; it must agree with every component current.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	f, err := readCircuitFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	circuit, err := series.ParseCircuit(f.Components, f.Totals)
	if err != nil {
		return err
	}

	res, err := series.Solve(circuit)
	if err != nil {
		var conflict *series.ConflictError
		if errors.As(err, &conflict) {
			for _, m := range conflict.Mismatches {
				fmt.Fprintf(cmd.ErrOrStderr(), "component %d: %g A, circuit total: %g A\n", m.Index+1, m.ComponentCurrent, m.TotalCurrent)
			}
		}
		return err
	}

	if solveJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	return writeTable(cmd.OutOrStdout(), res)
}

func readCircuitFile(path string, stdin io.Reader) (circuitFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return circuitFile{}, fmt.Errorf("reading circuit file: %w", err)
	}

	var f circuitFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return circuitFile{}, fmt.Errorf("parsing circuit file: %w", err)
	}
	if len(f.Components) == 0 {
		return circuitFile{}, errors.New("circuit file has no components")
	}

	return f, nil
}

func writeJSON(w io.Writer, res series.Result) error {
	out := struct {
		Components []series.Record `json:"components"`
		Totals     series.Record   `json:"totals"`
		Passes     int             `json:"passes"`
		Converged  bool            `json:"converged"`
	}{
		Components: series.Records(res.Components),
		Totals:     series.Component(res.Summary()).Record(),
		Passes:     res.Passes,
		Converged:  res.Converged,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeTable(w io.Writer, res series.Result) error {
	rows := make([][]string, 0, len(res.Components)+1)
	for i, r := range series.Records(res.Components) {
		rows = append(rows, []string{strconv.Itoa(i + 1), blank(r.Voltage), blank(r.Current), blank(r.Resistance), blank(r.Power)})
	}

	total := series.Component(res.Summary()).Record()
	rows = append(rows, []string{"total", blank(total.Voltage), blank(total.Current), blank(total.Resistance), blank(total.Power)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Voltage (V)", "Current (A)", "Resistance (Ω)", "Power (W)").
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%s\n%d passes, converged: %t\n", t.Render(), res.Passes, res.Converged)
	return err
}

func blank(t series.Text) string {
	if t == "" {
		return "-"
	}
	return string(t)
}
