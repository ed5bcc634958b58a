// Implements the BoardingQueue, which holds all passengers waiting at the
// gate in boarding-order. Passengers are enqueued once at run start.

package sim

import (
	"fmt"
	"strings"
)

// BoardingQueue is a FIFO queue of passengers who have not yet entered
// the aisle. Index 0 of the boarding order boards first.
type BoardingQueue struct {
	queue []*Passenger
}

// Enqueue adds a passenger to the back of the queue.
func (q *BoardingQueue) Enqueue(p *Passenger) {
	q.queue = append(q.queue, p)
}

// Len returns the number of passengers still waiting to board.
func (q *BoardingQueue) Len() int {
	return len(q.queue)
}

// Peek returns the passenger at the head of the queue without removing it.
// Returns nil if the queue is empty.
func (q *BoardingQueue) Peek() *Passenger {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Dequeue removes and returns the passenger at the head of the queue.
// Returns nil if the queue is empty.
func (q *BoardingQueue) Dequeue() *Passenger {
	if len(q.queue) == 0 {
		return nil
	}
	head := q.queue[0]
	q.queue = q.queue[1:]
	return head
}

func (q *BoardingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range q.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
