// Package render turns flashcard sets into output for people and programs:
// Markdown-to-HTML conversion of card text for the web page, and writers
// for the CLI output formats (text, json, yaml, markdown).
package render
