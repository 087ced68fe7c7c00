package models

// WordContent is the card payload generated for a word: a brief academic
// definition and two connected example sentences.
type WordContent struct {
	Definition string `json:"definition"`
	Example1   string `json:"example1"`
	Example2   string `json:"example2"`
}
