// Package storage keeps uploaded audio on the local filesystem for the
// duration of a request.
//
// Local is a small object store rooted at a base directory. Spool builds on
// it to hand out uniquely named scratch files that callers release when they
// are done:
//
//	scratch, err := spool.Acquire(ctx, ".mp3", upload)
//	if err != nil {
//		return err
//	}
//	defer scratch.Release(ctx)
package storage
