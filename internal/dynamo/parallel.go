package dynamo

// Chunk is a half-open index range [Start, End).
type Chunk struct {
	Start, End int
}

// Chunks splits [0, n) into at most workers contiguous ranges of at least
// minChunk indices. The split depends only on its arguments, so work
// assigned to a given chunk index is the same on every call.
func Chunks(n, workers, minChunk int) []Chunk {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if workers > n/minChunk {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	size := (n + workers - 1) / workers
	chunks := make([]Chunk, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}
