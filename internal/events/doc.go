// Package events provides types and interfaces for session lifecycle events.
//
// The session controller emits events without knowing who consumes them;
// handlers such as the speech dispatcher register with an EventEmitter and
// receive every event in registration order.
//
// The primary components are:
//   - Event: a typed, timestamped record of something a session did
//   - EventHandler: interface for components that react to events
//   - EventEmitter: interface for components that publish events
package events
