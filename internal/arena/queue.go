package arena

// queue holds connection ids waiting for a match. It is not safe for
// concurrent use; the manager's mutex guards it. Pop takes the most recently
// added entry: last joined, first matched.
type queue struct {
	ids []string
}

// enqueue appends id unless it is already waiting. Returns false on a
// duplicate.
func (q *queue) enqueue(id string) bool {
	for _, existing := range q.ids {
		if existing == id {
			return false
		}
	}
	q.ids = append(q.ids, id)
	return true
}

// dequeue removes id if present. Absence is not an error.
func (q *queue) dequeue(id string) bool {
	for i, existing := range q.ids {
		if existing == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (q *queue) pop() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	id := q.ids[len(q.ids)-1]
	q.ids = q.ids[:len(q.ids)-1]
	return id, true
}

func (q *queue) len() int {
	return len(q.ids)
}
