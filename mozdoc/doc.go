/*
Package mozdoc splits user style source into sections: code which applies
everywhere and code scoped by @-moz-document blocks to documents matching
one of the block conditions (domain, url, url-prefix, regexp).

Splitting never looks at CSS beyond what is necessary to find the keyword,
parse the conditions list and find the end of the block. Braces, commas and
quotes inside comments and quoted strings are ignored, so

	@-moz-document regexp("a{2,3}") { a[href="}"] { color: red; } }

is a single scoped section with regexp condition "a{2,3}" and its body kept
verbatim. Conditions are only extracted, never evaluated.
*/
package mozdoc
