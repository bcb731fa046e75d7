package entity

// Tipos de documento con consecutivo propio.
const (
	DocumentKindOrder   = "ORD"
	DocumentKindInvoice = "INV"
)

// IsValidDocumentKind retorna true si el tipo de documento es conocido.
func IsValidDocumentKind(kind string) bool {
	return kind == DocumentKindOrder || kind == DocumentKindInvoice
}

// DocumentSequence es el estado del consecutivo por (empresa, tipo, año).
// LastNumber se lee e incrementa de forma atómica; nunca con read-max-then-write.
type DocumentSequence struct {
	CompanyID  string
	Kind       string
	Year       int
	LastNumber int64
}
