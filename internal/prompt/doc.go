// Package prompt assembles the natural-language instruction sent to the
// language model. A prompt is made of a base template (topic and count),
// any custom instructions supplied by the user, and the format instructions
// derived from the target schema. Building a prompt is pure string
// composition: the same input always yields the same text.
package prompt
