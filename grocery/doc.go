// Package grocery turns a free-form spoken shopping list into ordered
// item/quantity records using a fixed multilingual lexicon.
//
// Extraction is a pure function: Normalize lowercases the text, strips
// filler words and collapses whitespace, then Segment scans the result with
// one composite pattern of optional number, optional unit and a single item
// word.
//
//	items := grocery.Extract("2 kg onion 3 packets milk")
//	// [{onion 2 kg} {milk 3 packets}]
package grocery
