package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ari-shimizu/dalt/trie"
	"github.com/ari-shimizu/dalt/trie/storage"
)

func init() {
	rootCmd.AddCommand(newDictCmd())
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Build and query a trie-backed word dictionary",
	}
	cmd.AddCommand(newDictBuildCmd(), newDictLookupCmd())
	return cmd
}

func newDictBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <wordlist> <image>",
		Short: "Build a trie image from a newline-delimited word list",
		Long: `The build command reads one word per line from wordlist, skipping empty
lines and repeated words, assigns each remaining word its 0-based position
in that list as its value, and serializes the resulting trie to image.

Example:
  daltctl dict build words.txt words.dat`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictBuild(args[0], args[1])
		},
	}
}

func newDictLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <image> <key>",
		Short: "Look up a single key in a trie image via mmap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictLookup(args[0], args[1])
		},
	}
}

func runDictBuild(wordlistPath, imagePath string) error {
	words, err := readWords(wordlistPath)
	if err != nil {
		return fmt.Errorf("failed to read word list: %w", err)
	}

	entries := make([]trie.Entry[int32], len(words))
	for i, w := range words {
		entries[i] = trie.Entry[int32]{Key: []byte(w), Value: int32(i)}
	}
	sort.Slice(entries, func(i, j int) bool { return string(entries[i].Key) < string(entries[j].Key) })

	added := 0
	t, err := trie.Build(entries, trie.WithObserver(observerFunc(func(key []byte) {
		added++
		printVerbose("added %q\n", key)
	})))
	if err != nil {
		return fmt.Errorf("failed to build trie: %w", err)
	}

	f, err := os.Create(imagePath)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()

	if err := t.Serialize(f, storage.Int32Serializer{}); err != nil {
		return fmt.Errorf("failed to serialize trie: %w", err)
	}

	printInfo("built %d keys into %s\n", added, imagePath)
	return nil
}

func runDictLookup(imagePath, key string) error {
	m, err := storage.OpenMmap(imagePath, 0, storage.Int32Serializer{}, storage.DefaultCacheCapacity)
	if err != nil {
		return fmt.Errorf("failed to open trie image: %w", err)
	}
	defer m.Close()

	t := trie.FromStorage[int32](m)
	value, ok := t.Find([]byte(key))
	if !ok {
		return fmt.Errorf("key %q not found", key)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"key": key, "line": value})
	}
	printInfo("%d\n", value)
	return nil
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	seen := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := scanner.Text()
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words, scanner.Err()
}

// observerFunc adapts a plain func into a trie.BuildObserver.
type observerFunc func(key []byte)

func (f observerFunc) OnKeyAdded(key []byte) { f(key) }
func (observerFunc) OnDone()                 {}
