// Package io reads gift-exchange requests and writes generated results.
//
// # Request Format
//
// A request names the participants, the cycle shape and the constraints.
// TOML and JSON carry the same fields:
//
//	participants = ["Ana", "Ben", "Cleo", "Dev"]
//	seed = 7
//	attempts = 500
//
//	[shape]
//	kind = "equal"   # none | hamiltonian | equal | inequality
//	size = 2
//
//	[[banned]]
//	from = "Ana"
//	to = "Ben"
//
//	[[forced]]
//	from = "Cleo"
//	to = "Dev"
//
// The format is chosen from the file extension by [ReadRequest], or given
// explicitly to [DecodeRequest].
//
// # Assignment Format
//
// [ReadAssignment] reads an existing set of pairings for cycle analysis:
//
//	{
//	  "participants": ["Ana", "Ben"],
//	  "pairings": [{"from": "Ana", "to": "Ben"}, {"from": "Ben", "to": "Ana"}]
//	}
//
// # Export
//
// [WriteJSON] writes any value as indented JSON. [WriteText] writes one
// "giver → receiver" line per pairing, grouped by cycle with a blank line
// between cycles.
package io
