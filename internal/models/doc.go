// Package models defines the domain types shared by the movie list client.
//
// The package contains three groups of types:
//
// 1. Wire types exchanged with the movie list service
//   - [MovieRecord] : a user's persisted list entry
//   - [RatingSummary] : the global aggregate rating for a title
//   - [NewMovie] and [MovieUpdate] : create and partial update bodies
//
// 2. Static client data
//   - [CatalogEntry] : embedded discovery metadata, never persisted
//
// 3. Dialog input
//   - [ReviewPrompt] and [ReviewInput] : rating/review dialog defaults and raw results
//   - [MovieForm] : the create form, validated into a [NewMovie]
//
// Display helpers ([Stars], [RatingLabel]) and list filtering ([FilterMovies]) live alongside the types they render.
package models
