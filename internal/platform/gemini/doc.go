// Package gemini adapts Google's Gemini API (google.golang.org/genai) to the
// generation collaborator contracts. A single Client serves both text calls
// and image calls.
//
// The package performs exactly one API call per request. It never retries and
// never interprets the text it receives.
package gemini
