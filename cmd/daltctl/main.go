// Command daltctl is a thin demonstration CLI over the trie and lattice
// packages. It carries no algorithmic content of its own.
package main

func main() {
	execute()
}
