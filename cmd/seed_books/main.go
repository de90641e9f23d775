package main

import (
	"fmt"
	"os"
	"strings"

	"bookshelf/config"
	"bookshelf/library"

	"github.com/robinjoseph08/golib/logger"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		keep       bool
	)
	cmd := &cobra.Command{
		Use:   "seed_books",
		Short: "Wipe the configured slot and refill it with the sample books",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			seed(configPath, keep)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&keep, "keep", false, "only seed when the collection is empty")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func seed(configPath string, keep bool) {
	log := logger.New()

	cfg, err := config.New(configPath)
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	slot, err := library.OpenSlot(cfg.StoreOptions())
	if err != nil {
		log.Err(err).Fatal("store error")
	}
	defer library.CloseSlot(slot)

	manager := library.NewLibraryManager(slot, library.WithLogger(log))

	if !keep {
		fmt.Printf("Clearing slot %q (%s)...\n", cfg.Store.Slot, cfg.Store.Driver)
		if err := manager.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing collection: %v\n", err)
			os.Exit(1)
		}
	}

	added, err := library.SeedSampleData(manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding books: %v\n", err)
		os.Exit(1)
	}
	if added == 0 {
		fmt.Println("Collection is not empty; nothing seeded.")
		return
	}

	fmt.Printf("Seeded %d books:\n", added)
	books, err := manager.GetAllBooks()
	if err != nil {
		fmt.Printf("Error retrieving books: %v\n", err)
		return
	}
	fmt.Printf("%-38s %-40s %-25s\n", "ID", "Title", "Author")
	fmt.Println(strings.Repeat("-", 105))
	for _, book := range books {
		fmt.Printf("%-38s %-40s %-25s\n", book.ID, library.TruncateString(book.Title, 40), library.TruncateString(book.Author, 25))
	}
}
