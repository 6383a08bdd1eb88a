// Package ports defines the driven-side interfaces of the engine: session
// persistence and the external collaborators (reasoning, research, domain
// search). Adapters implement them; the engine core depends only on these
// contracts. The package also ships a reusable SessionStore contract test
// suite so every adapter proves the same behavior.
package ports
