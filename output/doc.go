// Package output names finished label documents and packages them into a
// flat ZIP archive.
//
// Each label becomes one single-identifier PDF named by a fixed prefix and
// the identifier, for example "CHILE BARCODE HANGTAG C50039 0007 0001.pdf".
// The archive is flat: no directories, one entry per label, so print
// operators can drag the whole batch into a queue.
package output
