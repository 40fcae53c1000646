package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenlab/gobpe"
)

var countAddPrefixSpace bool

// newCountCmd creates the count subcommand.
func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [text]",
		Short: "Count how many tokens text encodes to",
		Long:  `Count the number of tokens text encodes to, without printing the tokens.`,
		RunE:  runCount,
	}
	cmd.Flags().BoolVar(&countAddPrefixSpace, "prefix-space", false, "synthesize a leading space before counting")
	return cmd
}

func runCount(_ *cobra.Command, args []string) error {
	tok, err := loadTokenizer()
	if err != nil {
		return err
	}
	text, err := readText(args)
	if err != nil {
		return err
	}
	flags := bpe.DefaultEncodeFlags()
	flags.AddPrefixSpace = countAddPrefixSpace
	fmt.Println(tok.CountTokens(text, &flags))
	return nil
}
