package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/landwatch/internal/export"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
	resetSample  bool
)

// corpusCmd represents the corpus command
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and manage the record corpus",
	Long: `Manage the local corpus of extracted notice records.

The corpus lives in one JSON snapshot (--db, default
~/.landwatch/property_database.json) mapping each source key to its record.`,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records in corpus order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		entries := a.store.Records()
		if len(entries) == 0 {
			fmt.Println("Corpus is empty")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tCITY\tTYPE\tADDRESS")
		for _, e := range entries {
			addr := e.Notice.PropertyDetails.Address
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Key, addr.City, e.Notice.PropertyDetails.TypeOfProperty, truncate(addr.Format(), 80))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d record(s)\n", len(entries))
		return nil
	},
}

var corpusShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		n, ok := a.store.Get(args[0])
		if !ok {
			return fmt.Errorf("%q: %w", args[0], model.ErrKeyNotFound)
		}
		if verbose {
			b, err := json.MarshalIndent(n, "", "    ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Println(args[0])
		printSummary(n)
		return nil
	},
}

var corpusDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Delete(args[0]); err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %s (%d record(s) left)\n", args[0], a.store.Len())
		return nil
	},
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the corpus with a JSON snapshot",
	Long: `Import validates every record in the snapshot against the record schema.
If any record does not match, nothing is changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Import(data); err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d record(s) from %s\n", a.store.Len(), args[0])
		return nil
	},
}

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the corpus as JSON or XLSX",
	Long: `Export writes the corpus snapshot to stdout or --out.

Example:
  landwatch corpus export > property_database.json
  landwatch corpus export --format xlsx --out notices.xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		var data []byte
		switch strings.ToLower(exportFormat) {
		case "json":
			data, err = a.store.Export()
		case "xlsx":
			if exportOut == "" {
				return fmt.Errorf("--format xlsx needs --out")
			}
			data, err = export.XLSX(a.store.Records(), a.logger)
		default:
			return fmt.Errorf("unknown export format %q (supported: json, xlsx)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if exportOut == "" {
			_, err := os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		stderr("✓ Exported %d record(s) to %s\n", a.store.Len(), exportOut)
		return nil
	},
}

var corpusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the bundled sample corpus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		if resetSample {
			err = a.store.LoadSample()
		} else {
			a.store.Clear()
		}
		if err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Printf("✓ Corpus reset (%d record(s))\n", a.store.Len())
		return nil
	},
}

var corpusClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		n := a.store.Len()
		a.store.Clear()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared %d record(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusListCmd, corpusShowCmd, corpusDeleteCmd, corpusImportCmd,
		corpusExportCmd, corpusResetCmd, corpusClearCmd)

	corpusExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	corpusExportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or xlsx")
	corpusResetCmd.Flags().BoolVar(&resetSample, "sample", true, "load the sample records (false leaves the corpus empty)")
}

// printSummary renders the fields a reader checks first.
func printSummary(n model.PublicNotice) {
	pd := n.PropertyDetails
	line := func(label, value string) {
		if model.IsBlank(value) {
			return
		}
		fmt.Printf("   %-16s %s\n", label+":", value)
	}
	line("Address", pd.Address.Format())
	line("Usage", string(pd.PropertyUsageType))
	line("Type", pd.TypeOfProperty)
	line("Area", pd.Area)
	line("Notice date", n.GeneralNoticeInfo.DateOfNotice)
	if d := n.GeneralNoticeInfo.NumDaysToRespond; d > 0 {
		line("Respond within", fmt.Sprintf("%d days", d))
	}
	line("Seller", n.SellerDetails.PersonName)
	line("Seller company", n.SellerDetails.CompanyName)
	line("Advocate", n.AdvocateDetails.AdvocateName)
	line("Firm", n.AdvocateDetails.FirmName)
	line("Phone", n.AdvocateDetails.Phone)
	line("Summary", n.GeneralNoticeInfo.Summary)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
