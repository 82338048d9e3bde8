// Package workbook arranges worksheet pages into chaptered, printable
// workbooks.
//
// # Pages and Chapters
//
// A workbook holds a flat list of [Page] records numbered densely from 1 and
// a list of [Chapter] records. A chapter is recorded only on the page where
// it starts (Page.StartsChapterID). Every other page inherits the chapter of
// the nearest preceding start marker, or none. Markers that reference a
// chapter that no longer exists are ignored.
//
// # Composition
//
// [Compose] lays pages out the way the workbook canvas shows them: page 1
// alone as the title page, then facing spreads (2,3), (4,5), ... A spread is
// split into two singles when its right page starts a chapter, so a chapter
// never begins mid-spread. Items are grouped into rows of at most three, and
// an item that starts a chapter always opens a new row.
//
// # Mutations
//
// Every mutation on [Workbook] leaves page numbers dense (1..N) and at most
// one start marker per chapter.
package workbook
