// Package prompt fills model instances interactively. A Filler walks the
// attributes of a schema and asks a Driver for each value; the default
// Driver prompts on the terminal through survey.
package prompt
