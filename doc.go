// Package webform decodes HTTP request bodies encoded as
// application/x-www-form-urlencoded or multipart/form-data.
//
// Decoding is streaming and single-pass: simple form fields are collected
// into an ordered multimap, whilst file uploads are copied to caller-owned
// spooled storage as they are read, keeping memory bounded regardless of
// attachment size. The package also provides the inverse urlencoded encoder,
// serialising a field map back to its wire form.
package webform
