// internal/queue/task.go
package queue

// Task is the unit carried on the queue: either a Chunk of candidates or a
// Shutdown marker. The two are distinguished by type, never by a sentinel
// payload, so an empty or odd value can never be misread as termination.
// Workers must type-switch exhaustively.
type Task interface {
	isTask()
}

// Chunk is a non-empty, ordered batch of candidate values assigned as one
// unit of work. The queue rejects empty chunks at Submit.
type Chunk struct {
	Values []string
}

func (Chunk) isTask() {}

// Shutdown instructs the receiving worker to record its stats and exit.
// It carries no payload.
type Shutdown struct{}

func (Shutdown) isTask() {}
