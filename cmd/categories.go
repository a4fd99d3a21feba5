package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trendsync/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the loaded category definition list",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats, err := catalog.Load(cfg.CategoriesFile)
	if err != nil {
		return err
	}

	fmt.Printf("%d categories from %s:\n\n", len(cats), cfg.CategoriesFile)
	for i, c := range cats {
		fmt.Printf(" %3d. %-12s > %-24s > %-32s %s\n", i+1, c.Primary, c.Sub, c.Name, c.Path)
	}
	return nil
}
