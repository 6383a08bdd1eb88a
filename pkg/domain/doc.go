// Package domain holds the core types of the trip-planning conversation
// engine: sessions, plans, requirements, candidates, itineraries, worker
// results and the tokenized follow-up menu. It has no dependencies outside
// the standard library so every adapter and the engine can share it.
package domain
