// Package gemini calls the Gemini generateContent API.
//
// The API key travels in the x-goog-api-key header, never in the URL, so it
// cannot leak through access logs or error messages. Generate returns the
// text of every part of the first candidate; choosing among them is left to
// the caller.
package gemini
