// Package fetch retrieves the rendered markup of a page once a CSS selector
// matches something in it. Chrome drives a headless browser for pages built by
// script; Static does a plain HTTP GET for pages that are not.
package fetch
