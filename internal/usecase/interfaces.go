package usecase

import "context"

// FileGateway retrieves attachment content from the chat platform.
type FileGateway interface {
	FetchToTemp(ctx context.Context, fileID, suffix string) (string, error)
}

// ReplySink receives the single outcome reply for one relay.
type ReplySink interface {
	Success(filename, url string)
	Failure(err error)
}
