// Package templates provides the .gitignore and LICENSE templates offered by
// gitman.
//
// A Catalog merges three stores, looked up in this order:
//
//	<config>/gitignores/<name>.gitignore   custom gitignore templates
//	<config>/licenses/<name>               custom license texts
//	<config>/.cache/<kind>/<name>          previously fetched templates
//	remote Source                          gitignore.io or the GitHub licenses API
//
// Fetched templates are written to the cache only when caching is enabled in
// config.yaml.
package templates
