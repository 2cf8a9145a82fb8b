// Package schema describes the shape of structured model output as a set of
// named, typed fields and uses that description twice: to render format
// instructions that steer a language model toward parseable JSON, and to
// validate and decode the text the model sends back.
//
// A Schema is plain data. It can be declared in Go (see the generation
// package for the flashcard set) or loaded from a YAML file, which lets
// callers swap in an alternate response model without code changes.
package schema
