// Package routegraph builds the weighted point graph used to derive the
// via-midpoint routes reported with each result.
package routegraph

import (
	"container/heap"
	"fmt"
)

// Graph is a small undirected weighted graph keyed by node label.
type Graph struct {
	adj map[string]map[string]float64
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]float64)}
}

// AddEdge adds an undirected edge between a and b with the given weight,
// creating the nodes as needed. A repeated edge overwrites the weight.
func (g *Graph) AddEdge(a, b string, weight float64) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[string]float64)
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[string]float64)
	}
	g.adj[a][b] = weight
	g.adj[b][a] = weight
}

// ShortestPath returns the minimum-weight path from source to target as an
// ordered label sequence, plus its total weight.
func (g *Graph) ShortestPath(from, to string) ([]string, float64, error) {
	if g.adj[from] == nil {
		return nil, 0, fmt.Errorf("unknown node %q", from)
	}
	if g.adj[to] == nil {
		return nil, 0, fmt.Errorf("unknown node %q", to)
	}

	dist := map[string]float64{from: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	pq := &nodeQueue{{label: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeDist)
		if visited[cur.label] {
			continue
		}
		visited[cur.label] = true
		if cur.label == to {
			break
		}
		for next, w := range g.adj[cur.label] {
			alt := cur.dist + w
			if d, ok := dist[next]; !ok || alt < d {
				dist[next] = alt
				prev[next] = cur.label
				heap.Push(pq, nodeDist{label: next, dist: alt})
			}
		}
	}

	if _, ok := dist[to]; !ok {
		return nil, 0, fmt.Errorf("no path from %q to %q", from, to)
	}

	path := []string{to}
	for at := to; at != from; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[to], nil
}

type nodeDist struct {
	label string
	dist  float64
}

type nodeQueue []nodeDist

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeDist)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
