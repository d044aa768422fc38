package search

// frontierItem is an A* frontier entry. Ordering is by FCost, then by the
// lower path cost, then by insertion order, so runs are reproducible.
type frontierItem[S comparable] struct {
	node         *Node[S]
	fCost        float64
	seq          int
	indexInQueue int
}

type priorityQueue[S comparable] []*frontierItem[S]

func (queue priorityQueue[S]) Len() int { return len(queue) }

func (queue priorityQueue[S]) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.fCost != b.fCost {
		return a.fCost < b.fCost
	}
	if a.node.pathCost != b.node.pathCost {
		return a.node.pathCost < b.node.pathCost
	}
	return a.seq < b.seq
}

func (queue priorityQueue[S]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *priorityQueue[S]) Push(x any) {
	item := x.(*frontierItem[S])
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue[S]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
