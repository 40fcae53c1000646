package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenlab/gobpe"
)

var (
	encAddPrefixSpace bool
	encAddBOS         bool
	encAddEOS         bool
	encOutput         string
	encShowTokens     bool
)

// newEncodeCmd creates the encode subcommand.
func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token IDs",
		Long: `Encode text into token IDs using the configured byte-level BPE
tokenizer.

If no text is provided as an argument, reads from stdin.`,
		Example: `  # Encode a simple string
  tokenizer encode --vocab vocab.json --merges merges.txt "Hello, world!"

  # Encode with a synthesized leading space and BOS/EOS
  tokenizer encode --prefix-space --bos --eos "Hello, world!"

  # Show tokens with their offsets, as JSON
  tokenizer encode --output json --tokens "Hello, world!"`,
		RunE: runEncode,
	}

	cmd.Flags().BoolVar(&encAddPrefixSpace, "prefix-space", false, "synthesize a leading space before encoding")
	cmd.Flags().BoolVar(&encAddBOS, "bos", false, "prepend the beginning-of-sequence token")
	cmd.Flags().BoolVar(&encAddEOS, "eos", false, "append the end-of-sequence token")
	cmd.Flags().StringVarP(&encOutput, "output", "o", "space", "output format: space, newline, json")
	cmd.Flags().BoolVar(&encShowTokens, "tokens", false, "show token strings and offsets instead of bare ids")

	return cmd
}

func runEncode(_ *cobra.Command, args []string) error {
	tok, err := loadTokenizer()
	if err != nil {
		return err
	}

	text, err := readText(args)
	if err != nil {
		return err
	}

	flags := bpe.DefaultEncodeFlags()
	flags.AddPrefixSpace = encAddPrefixSpace
	flags.AddBOS = encAddBOS
	flags.AddEOS = encAddEOS

	if encShowTokens {
		tokens := tok.Encode(text, &flags)
		return printTokens(tokens)
	}

	ids := tok.EncodeToIDs(text, &flags)
	return printIDs(ids)
}

func readText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func printIDs(ids []int32) error {
	switch encOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(ids)
	case "newline":
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	default:
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = fmt.Sprintf("%d", id)
		}
		fmt.Println(strings.Join(strs, " "))
		return nil
	}
}

func printTokens(tokens []bpe.Token) error {
	switch encOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(tokens)
	default:
		for _, t := range tokens {
			fmt.Printf("%d\t%q\t[%d,%d)\n", t.ID, t.Value, t.Offset.Index, t.Offset.Index+t.Offset.Length)
		}
		return nil
	}
}
