// Command factorize prints the prime factorization of integers.
package main

import "github.com/gerardbm/maths/internal/cmd"

func main() {
	cmd.Main()
}
