package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tokenlab/gobpe"
	"github.com/tokenlab/gobpe/internal/config"
	"github.com/tokenlab/gobpe/internal/merges"
	"github.com/tokenlab/gobpe/internal/vocab"
)

var (
	flagVocabPath  string
	flagMergesPath string
	flagProfileOf  string
	flagProfile    string
	flagBOSToken   string
	flagEOSToken   string
	flagUNKToken   string
	flagCache      int
	flagVerbose    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tokenizer",
	Short: "A byte-level BPE tokenizer CLI tool",
	Long: `Tokenizer is a CLI tool for byte-level BPE tokenization: the GPT-2 /
CodeGen / RoBERTa family of vocab+merges tokenizers.

Point it at a vocab.json and merges.txt directly, or name a profile from a
YAML profile file to switch between tokenizer variants.

Common operations:
  - encode: Convert text to tokens or token IDs
  - decode: Convert token IDs back to text
  - count:  Count how many tokens text encodes to
  - index:  Locate the text/token boundary for a bounded encode
  - info:   Display vocabulary and merge-table statistics`,
	Example: `  # Encode text against an explicit vocab/merges pair
  tokenizer encode --vocab gpt2/vocab.json --merges gpt2/merges.txt "Hello, world!"

  # Encode using a named profile
  tokenizer encode --profile-file profiles.yaml --profile gpt2 "Hello, world!"

  # Decode tokens
  tokenizer decode --profile-file profiles.yaml --profile gpt2 15496 2159

  # Get tokenizer info
  tokenizer info --profile-file profiles.yaml --profile gpt2`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokenizer version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVocabPath, "vocab", "", "path to vocab.json")
	rootCmd.PersistentFlags().StringVar(&flagMergesPath, "merges", "", "path to merges.txt")
	rootCmd.PersistentFlags().StringVar(&flagProfileOf, "profile-file", "", "path to a YAML profile file")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "profile name within --profile-file (default: the file's default)")
	rootCmd.PersistentFlags().StringVar(&flagBOSToken, "bos-token", "", "beginning-of-sequence token string, if any")
	rootCmd.PersistentFlags().StringVar(&flagEOSToken, "eos-token", "", "end-of-sequence token string, if any")
	rootCmd.PersistentFlags().StringVar(&flagUNKToken, "unk-token", "", "unknown-token string, if any")
	rootCmd.PersistentFlags().IntVar(&flagCache, "cache-capacity", 0, "word-encode cache capacity (0 = unbounded)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log construction details to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newCountCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newInfoCmd())
}

// loadTokenizer resolves --vocab/--merges or --profile-file/--profile into
// a constructed Tokenizer, applying the shared control-token and cache
// flags.
func loadTokenizer() (*bpe.Tokenizer, error) {
	vocabPath, mergesPath := flagVocabPath, flagMergesPath
	bosToken, eosToken, unkToken := flagBOSToken, flagEOSToken, flagUNKToken

	if flagProfileOf != "" {
		f, err := config.Load(flagProfileOf)
		if err != nil {
			return nil, err
		}
		p, err := f.Profile(flagProfile)
		if err != nil {
			return nil, err
		}
		if vocabPath == "" {
			vocabPath = p.VocabPath
		}
		if mergesPath == "" {
			mergesPath = p.MergesPath
		}
		if bosToken == "" {
			bosToken = p.BOSToken
		}
		if eosToken == "" {
			eosToken = p.EOSToken
		}
		if unkToken == "" {
			unkToken = p.UNKToken
		}
	}

	if vocabPath == "" || mergesPath == "" {
		return nil, fmt.Errorf("a vocabulary and merges path are required: pass --vocab/--merges or --profile-file/--profile")
	}

	v, err := vocab.FromJSONFile(vocabPath)
	if err != nil {
		return nil, err
	}
	m, err := merges.FromFile(mergesPath)
	if err != nil {
		return nil, err
	}

	opts := []bpe.Option{
		bpe.WithControlTokens(bosToken, eosToken, unkToken),
		bpe.WithCacheCapacity(flagCache),
	}
	if flagVerbose {
		opts = append(opts, bpe.WithLogger(zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()))
	}

	return bpe.New(v, m, opts...)
}
