// Package report renders a maximum-flow solution for people: a summary
// line, the per-flight flow table, the minimum cut and the critical
// flights, as aligned text (WriteText) or as a PDF (WritePDF, SavePDF).
//
// Both renderings share the same rows; the PDF is laid out with gofpdf
// using the core Arial font, so every string is kept to ASCII.
package report
