// Package config loads the viewer's TOML settings and JSON theme.
//
// Settings live in a small TOML file (theme path, watch toggle, table
// width cap, log destination). The theme is a JSON file mapping heading
// bands, heading text styles, code colors, and the rule color; values
// missing from the file keep their built-in defaults, so a theme only
// has to name what it changes.
//
// Both loaders read through a FileSystem seam. Production code uses the
// OS file system; tests substitute an in-memory one.
package config
