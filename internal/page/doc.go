// Package page models a search results page as seen by the hover controller:
// the anchors it contains, their on-screen boxes, and the rule deciding which
// of them may be previewed.
package page
