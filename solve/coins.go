// Package solve implements the auxiliary puzzle solvers: a coin-weight
// permutation search, a graph shortest-path walker, and a memoized
// recursive-function search used to calibrate a register value. Each
// solver only ever touches the VM through vm.Host, driving it by pushing
// lines into its input buffer exactly as a player typing at the terminal
// would.
package solve

import "synacorvm/vm"

// coins names the five coins the lobby puzzle requires weighing, in the
// order they're described to the player.
var coins = []string{
	"red coin", "blue coin", "shiny coin", "concave coin", "corroded coin",
}

// Coins brute-forces the five-coin weight puzzle: it generates every
// permutation of the five coins and, for each one, pushes a "use <coin>"
// line per coin followed by five "take <coin>" lines to retrieve them
// before the next attempt. The VM's own feedback (correct or incorrect
// weight) is for the player or a higher-level driver to read from output;
// this solver only produces the candidate input sequences.
func Coins(host vm.Host) {
	permute(coins, func(order []string) {
		for _, c := range order {
			host.PushInput("use " + c + "\n")
		}
		for _, c := range coins {
			host.PushInput("take " + c + "\n")
		}
	})
}

// permute calls visit once for every permutation of items, using Heap's
// algorithm so no permutation is allocated beyond the slice being
// shuffled in place between calls.
func permute(items []string, visit func([]string)) {
	items = append([]string(nil), items...)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			visit(items)
			return
		}
		generate(k - 1)
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				items[i], items[k-1] = items[k-1], items[i]
			} else {
				items[0], items[k-1] = items[k-1], items[0]
			}
			generate(k - 1)
		}
	}
	generate(len(items))
}
