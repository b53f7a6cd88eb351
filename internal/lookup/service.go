// internal/lookup/service.go
package lookup

import "context"

// Service resolves ISBNs and scanned barcodes to bibliographic records.
type Service interface {
	LookupISBN(ctx context.Context, isbn string) (*Record, error)
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}
