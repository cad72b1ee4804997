// Package balancing holds the tunable numbers of the game: hiring costs,
// reward baselines, runner generation allocations, and the damage-roll
// range table consulted at contract completion.
package balancing
