package Iservices

import "context"

// ICompletionService turns a caller's utterance into a short spoken reply. It never fails:
// provider errors come back as a fixed fallback sentence.
type ICompletionService interface {
	Complete(ctx context.Context, query string) string
}
