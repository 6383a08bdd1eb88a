/*
Package session implements session management and persistence orchestration.

It provides high-level abstractions for handling concurrent access to trip
sessions across multiple replicas, combining per-session local locks with
optional distributed locking and long-term storage adapters.
*/
package session
