// Package ignore implements the project ignore file (.forceignore by
// default): gitignore syntax, evaluated relative to the directory holding the
// project marker, where a later "!pattern" re-accepts what an earlier pattern
// denied.
//
// An active filter also denies duplicate files, dot-files outside .settings,
// and the two reserved package descriptor files. Those built-in rules are
// matched separately and cannot be negated from the ignore file.
package ignore
