// Package sanitizer reduces fetched web pages to a bounded plain-text excerpt.
//
// The document is parsed into a tree (nothing in it is ever executed), embedded
// active content and media are removed, and the remaining visible text is
// cleared of removed-element openers, whitespace-collapsed and truncated. The
// result is safe to display and small enough to forward to the relay.
//
// Libraries:
//   - goquery / x/net/html: tree parsing and element removal
//   - x/net/html/charset, chardet: decoding non-UTF-8 pages
//   - mimetype: content sniffing for non-HTML responses
package sanitizer
