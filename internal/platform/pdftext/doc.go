// Package pdftext extracts the plain text of uploaded PDF documents so that
// it can be sent to a provider as prompt content.
//
// Extraction runs pdfium compiled to WebAssembly, so no cgo or system
// library is needed. The runtime is started on first use.
package pdftext
