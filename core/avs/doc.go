// Package avs defines the wire-facing model shared by capability agents.
//
// Semantics used across the package:
//
//   - Directive: a structured command delivered by the cloud voice service,
//     identified by its header namespace/name pair and keyed by messageId.
//   - Event: an outbound message reporting device activity back to the cloud;
//     every event is assigned a fresh messageId at construction.
//   - FocusState: the channel-focus level granted by the focus manager.
//   - ContextState: the point-in-time snapshot a capability agent publishes
//     to the context aggregator.
//
// The package carries no transport: marshalled directives arrive through a
// directive router and marshalled events leave through a message sender, both
// injected into the agents that use them.
package avs
