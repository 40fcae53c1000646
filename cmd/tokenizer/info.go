package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInfoCmd creates the info subcommand.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display vocabulary and merge-table statistics",
		RunE:  runInfo,
	}
}

func runInfo(_ *cobra.Command, _ []string) error {
	tok, err := loadTokenizer()
	if err != nil {
		return err
	}
	fmt.Printf("vocabulary size:  %d\n", tok.VocabSize())
	fmt.Printf("merge rules:      %d\n", tok.MergeCount())
	fmt.Printf("added tokens:     %d\n", tok.AddedTokenCount())
	return nil
}
