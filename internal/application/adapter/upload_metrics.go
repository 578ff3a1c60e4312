// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// UploadMetrics records the outcome of sales uploads.
type UploadMetrics interface {
	// UploadAccepted records an accepted upload with its row count.
	UploadAccepted(rows int)

	// UploadRejected records a rejected upload with the rejection code.
	UploadRejected(code string)
}
