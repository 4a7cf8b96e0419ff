// Package bible provides the Korean book-name table and the scripture reference parser.
//
// The book table maps canonical Korean book names (and the numeral spellings of the
// Johannine epistles) to numeric identifiers 1-66 in canonical order. The reference
// parser turns free-form strings such as "민수기 23:27~24:9" or "시편 1:1" into
// VerseRange units. Only the first resolvable reference in a string is used.
package bible
