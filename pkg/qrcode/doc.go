// Package qrcode generates PNG QR codes for wallet payment flows, such as
// rendering an offline copy of a payment code returned by the backend.
//
// Codes use medium error correction and default to 256px, a size that
// scans reliably on phone cameras:
//
//	png, err := qrcode.Generate("wallet:payment:abc123", 0)
//	dataURI, err := qrcode.GenerateBase64Image("wallet:payment:abc123", 256)
//
// GenerateBase64Image returns a data URI suitable for direct embedding in
// an <img> tag.
package qrcode
