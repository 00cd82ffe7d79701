// Package kwrank answers "what is this article about?" for a single web page.
// It fetches a page, reduces it to paragraph text, and ranks the salient
// words of that text by a single-document term weight.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package kwrank
