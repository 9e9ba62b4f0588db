// Package engine holds the pure state transitions of the mining economy.
//
// Every operation takes the current model.State and returns the next one.
// Inputs are never modified. A reference to an unknown user or miner is not
// an error: the input state is returned as is.
package engine
