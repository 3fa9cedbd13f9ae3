// Command schemagen writes the JSON schema of the configuration file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/carousel/pkg/config"
)

var outFile = flag.String("o", "config.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	b, err := config.Schema()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(b, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
