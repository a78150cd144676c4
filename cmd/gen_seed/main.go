// Command gen_seed writes the built-in sample library data as a JSON seed
// file, as a starting point for a customized catalog.
package main

import (
	"flag"
	"fmt"
	"os"

	"library-circulation/library"
)

func main() {
	out := flag.String("o", "seed.json", "output path for the seed file")
	flag.Parse()

	seed := library.DefaultSeed()
	if err := library.WriteSeedFile(*out, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing seed file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d books and %d members to %s\n", len(seed.Books), len(seed.Members), *out)
	fmt.Println("Edit the file and start the desk with: circdesk --seed", *out)
}
