package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doctag/internal/anonymize"
	"doctag/internal/extract"
)

var showStats bool

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize <file>",
	Short: "Mask personal data in a document and print the result",
	Long: `Anonymize runs only the masking stage: it prints the document text
with personal data replaced by tokens like [PERSON_NAME_1]. Nothing is
sent anywhere; use it to inspect what the model would see.

Example:
  doctag anonymize contract.txt
  doctag anonymize contract.pdf --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runAnonymize,
}

func init() {
	rootCmd.AddCommand(anonymizeCmd)
	anonymizeCmd.Flags().BoolVar(&showStats, "stats", false, "print per-type mask counts to stderr")
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	extracted, err := extract.New(cfg.Extract).Extract(args[0])
	if err != nil {
		return err
	}
	if extracted.IsScanned {
		return fmt.Errorf("%s has no text layer (scanned PDF, OCR required)", args[0])
	}

	anon := anonymize.New(anonymize.DefaultRecognizer(), cfg.Anonymize.Entities).Anonymize(extracted.Text)
	fmt.Println(anon.Text)

	if showStats {
		for _, t := range anonymize.AllEntityTypes() {
			if n := anon.Stats[t]; n > 0 {
				fmt.Fprintf(os.Stderr, "%s: %d\n", t, n)
			}
		}
	}
	return nil
}
