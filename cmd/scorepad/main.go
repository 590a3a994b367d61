// main is the entry point for the scorepad CLI.
package main

import (
	"fmt"
	"os"

	"github.com/louieddxu2/BoardGameScorePad-sub001/cmd"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/store"
)

func main() {
	defer store.CloseStores()

	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
