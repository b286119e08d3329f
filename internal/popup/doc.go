// Package popup renders the floating preview shown next to a hovered link.
//
// A View owns exactly one isolated Root obtained from a Document. Roots only
// support create, replace content, position, visibility and destroy, so the
// host page can neither read nor style what is inside. All dynamic text is
// escaped by html/template and the rendered fragment is passed through a
// bluemonday allow-list before it reaches the root.
package popup
