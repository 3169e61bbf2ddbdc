/*
Package ports defines the driven ports (interfaces) of the automata service.

These interfaces decouple the engine and its registry from storage backends.

# Key Interfaces

  - DefinitionStore: persists machine definitions by name (e.g., in memory or Redis).
*/
package ports
