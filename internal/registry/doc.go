// Package registry describes metadata types and how their files are laid out.
//
// A Registry is built once, from the embedded default (Default) or a user
// YAML file (Load), and never mutated afterwards. Besides the id table it
// keeps three derived indices:
//
//   - suffix to type, for top-level types; legacy suffixes and child
//     suffixes only fill gaps left by primary suffixes
//   - strict directory name to type
//   - child type to parent type
//
// Name lookups ignore case and spaces, so "Apex Class", "apexclass" and
// "ApexClass" all find the same type.
package registry
