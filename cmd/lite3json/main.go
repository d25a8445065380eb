// lite3json is a small CLI that exercises the JSON<->Lite³ transcoders
// end-to-end: it decodes a JSON document into a Lite³ message and
// re-encodes that message as JSON. It does not compare the output with
// the input.
//
// Usage:
//
//	lite3json [-in file] [-out file] [-max-nesting N]
package main

import (
	"flag"
	"log"
	"os"

	ljson "github.com/andersstorhaug/lite3/json"
)

func main() {
	inPath := flag.String("in", "", "input JSON file (default stdin)")
	outPath := flag.String("out", "", "output JSON file (default stdout)")
	maxNesting := flag.Int("max-nesting", ljson.DefaultNestingMax, "maximum object/array nesting depth")
	flag.Parse()

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatalf("lite3json: %v", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("lite3json: %v", err)
		}
		defer f.Close()
		out = f
	}

	root, err := ljson.Decode(in, ljson.Options{NestingMax: *maxNesting})
	if err != nil {
		log.Fatalf("lite3json: decode: %v", err)
	}

	if err := ljson.Encode(out, root); err != nil {
		log.Fatalf("lite3json: encode: %v", err)
	}
}
