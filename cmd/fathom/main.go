// Package main is the entry point for the fathom CLI. It wraps the
// extraction library with three surfaces: one-shot extraction of a file
// or stdin, a category listing, and an MCP stdio server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fathomtext/fathom"
	"github.com/fathomtext/fathom/internal/lexicon"
	fathommcp "github.com/fathomtext/fathom/internal/mcp"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fathom",
	Short: "Extract typed context records from free-form text",
	Long: `fathom converts one sentence or paragraph into typed, confidence-scored
context records across thirteen fixed categories: identity, goals, events,
tools, skills, jobs, preferences, experiences, facts, results, intents,
constraints, and warnings.

Extraction is deterministic and never fails: text that matches nothing
yields empty category arrays.`,
	Version:           version,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fathom.yaml or ~/.config/fathom/config.yaml)")
	rootCmd.PersistentFlags().String("lexicon", "", "override lexicon YAML file")
	rootCmd.PersistentFlags().Bool("verbose", false, "log pipeline diagnostics to stderr")

	_ = viper.BindPFlag("lexicon", rootCmd.PersistentFlags().Lookup("lexicon"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fathom")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fathom"))
		}
	}

	viper.SetEnvPrefix("FATHOM")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// setup applies config shared by all subcommands: optional lexicon
// override and the diagnostic sink.
func setup(cmd *cobra.Command, args []string) error {
	if path := viper.GetString("lexicon"); path != "" {
		lex, err := lexicon.Load(path)
		if err != nil {
			return fmt.Errorf("loading lexicon: %w", err)
		}
		lexicon.SetDefault(lex)
	}

	if viper.GetBool("verbose") {
		pipeline.SetLogger(func(format string, fargs ...any) {
			fmt.Fprintf(os.Stderr, "fathom: "+format+"\n", fargs...)
		})
	}
	return nil
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the extraction categories in canonical order",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range types.Categories {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fathom version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fathom %s (parser %s)\n", version, fathom.Version)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fathom MCP tools over stdio",
	Long: `Serve the Model Context Protocol over stdin/stdout, exposing the
fathom_extract, fathom_extract_category, and fathom_categories tools to
MCP clients such as Claude Desktop and Cursor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := fathommcp.NewServer(version)
		return fathommcp.ServeStdio(s)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
