package models

// MongoDB collection names
const (
	PostsCollection   = "posts"
	PetsCollection    = "pets"
	VotesCollection   = "postvotes"
	SpeciesCollection = "species"
)
