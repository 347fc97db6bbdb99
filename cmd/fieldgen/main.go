// Command fieldgen generates typed field tags for specification targets.
package main

import (
	"os"

	"github.com/gabisonia/go-specification/internal/fieldgen"
)

func main() {
	if err := fieldgen.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
