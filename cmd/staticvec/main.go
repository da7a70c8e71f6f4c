// Package main provides the StaticVec CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/staticvec-ml/staticvec/internal/backend"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("StaticVec %s\n", version)
			return
		case "backends":
			fmt.Println(strings.Join(backend.Available(), "\n"))
			return
		case "inspect":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: staticvec inspect <table.svec>")
				os.Exit(1)
			}
			inspect(os.Args[2])
			return
		}
	}

	fmt.Println("StaticVec - static word vectors with a learned projection")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version              Show version")
	fmt.Println("  backends             List available compute backends")
	fmt.Println("  inspect <table>      Show the shape of a native vector table")
}

func inspect(path string) {
	table, err := vectors.ReadBinaryFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "staticvec: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d rows x %d dims, %d vocabulary entries\n",
		path, table.Rows(), table.Width(), table.VocabSize())
}
