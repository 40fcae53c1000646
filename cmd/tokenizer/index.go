package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tokenlab/gobpe"
)

var (
	idxMax       int
	idxFromEnd   bool
	idxAddPrefix bool
)

// newIndexCmd creates the index subcommand.
func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <max> [text]",
		Short: "Find the text/token boundary for a bounded encode",
		Long: `Report how much of text (in bytes) and how many tokens are covered by a
bounded encode of at most max tokens, without splitting a multi-byte code
point across the boundary.

By default measures from the start of text (index-of-token-count); with
--from-end, measures a trailing run from the end of text instead
(last-index-of-token-count).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIndex,
	}
	cmd.Flags().BoolVar(&idxFromEnd, "from-end", false, "measure a trailing run from the end of text")
	cmd.Flags().BoolVar(&idxAddPrefix, "prefix-space", false, "synthesize a leading space before encoding")
	return cmd
}

func runIndex(_ *cobra.Command, args []string) error {
	max, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid max %q: %w", args[0], err)
	}
	idxMax = max

	tok, err := loadTokenizer()
	if err != nil {
		return err
	}
	text, err := readText(args[1:])
	if err != nil {
		return err
	}

	flags := bpe.DefaultEncodeFlags()
	flags.AddPrefixSpace = idxAddPrefix

	if idxFromEnd {
		textIndex, tokenCount, err := tok.LastIndexOfTokenCount(text, idxMax, &flags)
		if err != nil {
			return err
		}
		fmt.Printf("text_index=%d token_count=%d\n", textIndex, tokenCount)
		return nil
	}

	textLength, tokenCount, err := tok.IndexOfTokenCount(text, idxMax, &flags)
	if err != nil {
		return err
	}
	fmt.Printf("text_length=%d token_count=%d\n", textLength, tokenCount)
	return nil
}
