// Package ui is the screen layer of the terminal engine.
//
// Core abstractions:
//   - Screen: a navigable view that describes its frame as component nodes
//     and installs key handlers when it becomes current
//   - HandlerChain: ordered (predicate, action) key handlers, first match wins
//   - Navigator: the screen stack (push, pop, replace, reset)
//   - Overlay: a single popup composited over the current screen
//   - KeybindRegistry: global bindings checked before any screen
//   - Focus: rotates focus across tabs or fields
package ui
