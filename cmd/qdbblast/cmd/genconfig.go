package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qdbblast/qdbblast/internal/common"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

var generatedTypes = []schema.ColType{schema.Double, schema.Long, schema.Symbol}

func genConfigCmd() *cobra.Command {
	var (
		numTables  int
		numColumns int
		output     string
	)
	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Generate a wide benchmark configuration file",
		Long: `Generate a benchmark configuration with many wide tables. Every table gets
a designated "timestamp" column plus the requested number of generated
columns cycling through the Double, Long and Symbol types.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			common.ConfigureCommandLineLogging()
			if numTables < 1 || numColumns < 1 {
				return errors.New("tables and columns must both be at least 1")
			}
			content := generateConfig(numTables, numColumns)
			if output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
				return errors.WithStack(err)
			}
			log.Infof("wrote %d tables with %d columns each to %s", numTables, numColumns, output)
			return nil
		},
	}
	cmd.Flags().IntVar(&numTables, "tables", 20, "Number of tables to generate")
	cmd.Flags().IntVar(&numColumns, "columns", 40, "Number of generated columns per table, not counting the designated timestamp")
	cmd.Flags().StringVarP(&output, "output", "o", "big.toml", "File to write, or - for stdout")
	return cmd
}

func generateConfig(numTables, numColumns int) string {
	schemaLines := []string{`    ["timestamp", "Timestamp"]`}
	for i := 1; i <= numColumns; i++ {
		columnType := generatedTypes[(i-1)%len(generatedTypes)]
		schemaLines = append(schemaLines, fmt.Sprintf(`    ["col%d", %q]`, i, string(columnType)))
	}
	schemaBlock := "[\n" + strings.Join(schemaLines, ",\n") + "\n]"

	var sb strings.Builder
	sb.WriteString("debug = true\n\n")
	sb.WriteString("[database]\n")
	sb.WriteString("ilp = \"http::addr=localhost:9000;\"\n")
	sb.WriteString("pgsql = \"host=localhost port=8812 user=admin password=quest dbname=qdb\"\n\n")

	for t := 1; t <= numTables; t++ {
		sb.WriteString(fmt.Sprintf("[tables.metrics%d]\n", t))
		sb.WriteString("schema = " + schemaBlock + "\n")
		sb.WriteString("designated_ts = \"timestamp\"\n\n")
		sb.WriteString(fmt.Sprintf("[tables.metrics%d.send]\n", t))
		sb.WriteString("batch_pause = [\"10ms\", \"100ms\"]\n")
		sb.WriteString("batch_size = [10000, 50000]\n")
		sb.WriteString("parallel_senders = 4\n")
		sb.WriteString("tot_rows = 25000000\n")
		sb.WriteString("batches_connection_keepalive = 10\n\n")
	}
	return sb.String()
}
