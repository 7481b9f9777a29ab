// Command dat builds a double-array trie from a tab-separated word list
// and writes the packed unit array to a file.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/eric1688/dat"
	"github.com/eric1688/dat/wordlist"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	cli.ArgsHelp = "input_file output_file"
	cli.MaxArgs = 2
	cli.Main()

	args := flag.Args()
	if len(args) != 2 {
		log.Errf("dat: expected exactly 2 arguments, got %d", len(args))
		return 1
	}
	inputPath, outputPath := args[0], args[1]

	keys, values, err := readAndSort(inputPath)
	if err != nil {
		log.Errf("dat: %v", err)
		return 1
	}

	log.Infof("dat: building from %d keys", len(keys))
	out, err := dat.Build(keys, values, nil)
	if err != nil {
		log.Errf("dat: build failed: %v", err)
		return 1
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Errf("dat: %v", err)
		return 1
	}
	defer f.Close()

	if rc := out.Save(f); rc != 0 {
		log.Errf("dat: save to %s failed", outputPath)
		return 1
	}

	log.Infof("dat: wrote %d units (%d bytes) to %s", out.NumUnits(), out.TotalSize(), outputPath)
	return 0
}

// readAndSort loads every (key, value) pair from path and returns them in
// strictly increasing key order, as Build requires. The auxiliary
// ordering is a plain index sort rather than an ordered-map structure:
// nothing in the retrieved dependency set offers one, and the sort is a
// one-shot pre-pass over data already fully resident in memory.
func readAndSort(path string) ([][]byte, []int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	keys, values, err := wordlist.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	sortedKeys := make([][]byte, len(keys))
	sortedValues := make([]int32, len(values))
	for i, idx := range order {
		sortedKeys[i] = keys[idx]
		sortedValues[i] = values[idx]
	}

	for i := 1; i < len(sortedKeys); i++ {
		if string(sortedKeys[i-1]) == string(sortedKeys[i]) {
			return nil, nil, fmt.Errorf("dat: duplicate key %q", sortedKeys[i])
		}
	}

	return sortedKeys, sortedValues, nil
}
