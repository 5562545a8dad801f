package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomtext/fathom"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract context records from a file or stdin",
	Long: `Extract context records from a file or stdin and print them as JSON.

Examples:
  # Extract from a file
  fathom extract notes.txt

  # Extract from stdin
  echo "I want to learn Go on my phone." | fathom extract -

  # Extract a single category
  fathom extract --category goals notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("category", "", "extract only this category")
	extractCmd.Flags().String("source", "", "source label for the response meta block (default: filename or 'stdin')")
	extractCmd.Flags().Bool("pretty", false, "indent the JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error

	source := "stdin"
	if len(args) == 0 || args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		source = args[0]
	}

	if s, _ := cmd.Flags().GetString("source"); s != "" {
		source = s
	}

	var out any
	if cat, _ := cmd.Flags().GetString("category"); cat != "" {
		out, err = fathom.ExtractCategory(string(text), cat)
		if err != nil {
			return err
		}
	} else {
		out = fathom.ExtractContext(string(text), fathom.WithSource(source))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
