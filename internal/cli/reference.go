package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/geolens/internal/reference"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Inspect stored reference analyses",
	Long: `Reference analyses are accepted results that geolens reuses when a new
article is similar enough to one it has already seen.`,
}

var referenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored references, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openReferenceStore()
		if err != nil {
			return err
		}

		records := store.List()
		if len(records) == 0 {
			fmt.Fprintf(os.Stderr, "No stored references\n")
			return nil
		}
		for _, rec := range records {
			names := make([]string, 0, len(rec.Regions)+len(rec.Places))
			for _, t := range rec.Regions {
				names = append(names, t.Name)
			}
			for _, t := range rec.Places {
				names = append(names, t.Name)
			}
			fmt.Printf("%s  %s  %s\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), strings.Join(names, ", "))
		}
		return nil
	},
}

var referenceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openReferenceStore()
		if err != nil {
			return err
		}
		n := store.Len()
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear references: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Removed %d references\n", n)
		return nil
	},
}

func openReferenceStore() (*reference.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Reference.Enabled {
		return nil, fmt.Errorf("the reference store is disabled (reference.enabled: false)")
	}
	store, err := reference.Open(cfg.Reference.Path, reference.WithMaxRecords(cfg.Reference.MaxRecords))
	if err != nil {
		return nil, fmt.Errorf("open reference store: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.AddCommand(referenceCmd)
	referenceCmd.AddCommand(referenceListCmd)
	referenceCmd.AddCommand(referenceClearCmd)
}
