// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package dataset reads the Book-Crossing CSV files through an in-memory DuckDB
instance.

DuckDB's read_csv handles quoting, embedded commas and encoding quirks of the
published files. Every column is read as VARCHAR and converted in Go, so a
bad value is reported with its source, row and column instead of being
silently coerced.

# Files

Books.csv (required): ISBN, Book-Title, Book-Author, Year-Of-Publication,
Publisher, Image-URL-L. Year-Of-Publication is kept as text since the
published file mixes years with publisher names in a few rows.

Ratings.csv (required): User-ID, ISBN, Book-Rating. User-ID must be an
integer and Book-Rating an integer in [0, 10].

Users.csv (optional): User-ID, Location, Age. A missing or non-numeric Age
is left unset.

Any missing column or invalid required value fails the load with an error
wrapping models.ErrMalformedInput.

# Usage

	src, err := dataset.Open(dataset.Config{
	    BooksPath:   "data/Books.csv",
	    RatingsPath: "data/Ratings.csv",
	    UsersPath:   "data/Users.csv",
	}, logger)
	if err != nil {
	    return err
	}
	defer src.Close()

	data, err := src.Snapshot(ctx) // loads the three files concurrently
*/
package dataset
