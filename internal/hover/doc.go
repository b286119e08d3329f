// Package hover implements the hover/popup state machine of a results page.
//
// One Controller exists per page. It receives pointer events, debounces hover
// intent, opens at most one popup at a time and applies summary results to it.
// All events, timer fires and request completions are serialized under the
// controller's lock, which plays the role of a single-threaded event queue.
// Each popup is tagged with the session token of the hover that opened it; a
// result carrying any other token is dropped.
//
//	idle -> pending -> loading -> {content | error} -> closing -> idle
package hover
