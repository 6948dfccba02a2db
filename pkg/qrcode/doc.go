// Package qrcode renders PNG QR codes, including contact cards in vCard 3.0
// format.
//
//	png, err := qrcode.Generate(qrcode.VCard{Name: "Ana López", Email: "ana@example.com"}.String(), 256)
package qrcode
