package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/outline"
	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <page.html>",
	Short: "Export the navigation tree of a page as a Word outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().StringP("output", "o", "", "output file (defaults to the page name with .docx)")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src := args[0]
	if !parser.IsPage(src) {
		return fmt.Errorf("not a documentation page: %s", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	page, err := parser.Parse(in, filepath.Base(src))
	if err != nil {
		return err
	}
	tree := doctree.BuildNav(page.Tree.Decls, doctree.Classifier{WholeWords: cfg.WholeWordKeywords})

	dst, _ := cmd.Flags().GetString("output")
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".docx"
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := outline.Export(out, page.Tree.Title, tree); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Outline written: %s (%d entries)\n", dst, tree.Count())
	return nil
}
