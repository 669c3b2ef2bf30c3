package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spigell/offer-matcher/internal/resume"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume file]",
	Short: "Parse a resume file (pdf, docx, txt) or text into a structured record",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("text", "t", "", "resume text to parse instead of a file")
	parseCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")
}

func parse(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := newLogger("stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, _ := cmd.Flags().GetString("text")
	output, _ := cmd.Flags().GetString("output")

	parser := newResumeParser(ctx, config.Resume, logger)

	var record *resume.Record
	switch {
	case len(args) == 1:
		record, err = parser.ParseFile(ctx, args[0])
		if err != nil {
			logger.Fatal("parsing resume", zap.String("path", args[0]), zap.Error(err))
		}
	case text != "":
		record = parser.ParseText(text)
	default:
		logger.Fatal("a resume file argument or --text is required")
	}

	if err := writeRecord(os.Stdout, record, output); err != nil {
		logger.Fatal("printing resume", zap.Error(err))
	}
}

// writeRecord prints v as indented JSON or as YAML with the same keys and order.
func writeRecord(w io.Writer, v any, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case outputJSON:
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		// JSON is valid YAML; decoding into a node keeps the key order of the JSON document.
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		clearStyle(&node)

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// clearStyle drops the flow and quoting styles inherited from JSON so the encoder picks block YAML.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
