// Package bridge carries requests from the rendering context to the
// privileged network context.
//
// The rendering context that watches hovers may not call the relay directly.
// It sends a Message over a Channel and waits for the Reply; the privileged
// side runs Serve with a Handler. Two actions exist: getSettings returns the
// current settings and getSummary returns a summary result. Each request is
// answered exactly once.
package bridge
