package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tokenlab/gobpe"
)

var (
	decHasPrefixSpace bool
	decSkipSpecial    bool
)

// newDecodeCmd creates the decode subcommand.
func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [token_ids...]",
		Short: "Decode token IDs to text",
		Long: `Decode a sequence of token IDs back to text.

Token IDs can be provided as arguments or piped from stdin, separated by
any whitespace.`,
		Example: `  # Decode token IDs from arguments
  tokenizer decode --vocab vocab.json --merges merges.txt 15496 2159

  # Decode from encode output
  tokenizer encode "Hello" | tokenizer decode`,
		RunE: runDecode,
	}

	cmd.Flags().BoolVar(&decHasPrefixSpace, "prefix-space", false, "drop a synthesized leading space from the first token")
	cmd.Flags().BoolVar(&decSkipSpecial, "skip-special", false, "omit BOS/EOS/UNK strings from the output")

	return cmd
}

func runDecode(_ *cobra.Command, args []string) error {
	tok, err := loadTokenizer()
	if err != nil {
		return err
	}

	ids, err := readIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no token IDs provided")
	}

	flags := &bpe.DecodeFlags{
		HasPrefixSpace:        decHasPrefixSpace,
		ConsiderSpecialTokens: !decSkipSpecial,
	}
	fmt.Print(tok.Decode(ids, flags))
	return nil
}

func readIDs(args []string) ([]int32, error) {
	var ids []int32
	if len(args) > 0 {
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid token id %q: %w", arg, err)
			}
			ids = append(ids, int32(id))
		}
		return ids, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		id, err := strconv.ParseInt(scanner.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", scanner.Text(), err)
		}
		ids = append(ids, int32(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return ids, nil
}
