// Package pdf provides an Extractor for PDF manuals.
//
// Every page becomes one section whose ordinal is the 1-based page number.
// Text is read with github.com/ledongthuc/pdf. The chapter label comes from
// the page's typography (a row set noticeably larger than the rest of the
// page, near the top) and falls back to a leading-line pattern.
package pdf
