// Package extraction turns a transcript into grocery items.
//
// Two extractors exist. The heuristic one wraps grocery.Extract and is always
// available. The LLM one prompts a completion provider for a JSON array and
// recovers the array from whatever text comes back; an unusable answer
// yields an empty list with a warning rather than an error.
//
// Registry selects an extractor per request by mode name.
package extraction
