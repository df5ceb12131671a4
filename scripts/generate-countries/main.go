package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strings"
)

// isoCodes matches the iso_3166-1.json file shipped by the Debian iso-codes
// project.
type isoCodes struct {
	Entries []struct {
		Alpha2 string `json:"alpha_2"`
		Alpha3 string `json:"alpha_3"`
		Name   string `json:"name"`
	} `json:"3166-1"`
}

func main() {
	var (
		inputPath  = flag.String("input", "iso_3166-1.json", "iso-codes ISO 3166-1 JSON file")
		outputPath = flag.String("output", "pkg/countries/table.go", "generated Go file")
	)
	flag.Parse()

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}
	var codes isoCodes
	if err := json.Unmarshal(raw, &codes); err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode input: %v\n", err)
		os.Exit(1)
	}
	sort.Slice(codes.Entries, func(i, j int) bool {
		return codes.Entries[i].Alpha3 < codes.Entries[j].Alpha3
	})

	var buf bytes.Buffer
	buf.WriteString("// Code generated by scripts/generate-countries. DO NOT EDIT.\n\n")
	buf.WriteString("package countries\n\n")
	buf.WriteString("// iso3166 is the ISO 3166-1 table, sorted by alpha-3 code.\n")
	buf.WriteString("var iso3166 = []Country{\n")
	for _, entry := range codes.Entries {
		fmt.Fprintf(&buf, "\t{Code: %q, Alpha2: %q, Name: %q},\n",
			strings.ToUpper(entry.Alpha3), strings.ToUpper(entry.Alpha2), entry.Name)
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to format output: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d countries written to %s\n", len(codes.Entries), *outputPath)
}
