// Package html provides an Extractor for HTML documentation sites.
//
// Each file is parsed with golang.org/x/net/html and split into sections
// at h1 and h2 elements. Script, style, navigation, header, footer,
// noscript and svg subtrees are dropped. Text inside pre elements keeps
// its original whitespace so code samples stay recognisable.
package html
