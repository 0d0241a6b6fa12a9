package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/pprof/profile"
)

// The aggregation here follows the graph building in pprof's internal graph package,
// reduced to one node per function. pprof does not export that package.

// GetGraphFromProfile builds a call graph out of the samples in prof.
// Sample weight is the last sample value, which is cpu/nanoseconds for CPU profiles.
func GetGraphFromProfile(prof *profile.Profile) *Graph {
	nm := make(NodeMap)
	// every location maps to the functions inlined at it, leaf first
	locations := make(map[uint64][]*Node, len(prof.Location))
	for _, l := range prof.Location {
		lines := l.Line
		if len(lines) == 0 {
			lines = []profile.Line{{}}
		}
		nodes := make([]*Node, len(lines))
		for i, line := range lines {
			nodes[i] = nm.FindOrInsertNode(nodeInfo(l, line))
		}
		locations[l.ID] = nodes
	}

	seenNode := make(map[*Node]bool)
	seenEdge := make(map[NodePair]bool)
	for _, sample := range prof.Sample {
		if len(sample.Value) == 0 {
			continue
		}
		w := sample.Value[len(sample.Value)-1]
		if w == 0 {
			continue
		}
		for k := range seenNode {
			delete(seenNode, k)
		}
		for k := range seenEdge {
			delete(seenEdge, k)
		}

		// walk from the root of the stack towards the leaf
		var parent *Node
		for i := len(sample.Location) - 1; i >= 0; i-- {
			locNodes := locations[sample.Location[i].ID]
			for ni := len(locNodes) - 1; ni >= 0; ni-- {
				n := locNodes[ni]
				if !seenNode[n] {
					seenNode[n] = true
					n.Cum += w
				}
				if parent != nil {
					pair := NodePair{Src: parent, Dest: n}
					if !seenEdge[pair] {
						seenEdge[pair] = true
						parent.addEdge(n, w)
					}
				}
				parent = n
			}
		}
		if parent != nil {
			parent.Flat += w
		}
	}
	return SelectNodesForGraph(nm.Nodes())
}

type NodePair struct {
	Src, Dest *Node
}

type Nodes []*Node

type Graph struct {
	Nodes Nodes
}

// FindNodesByName returns the nodes whose function name contains name, hottest first.
func (g Graph) FindNodesByName(name string) Nodes {
	nodes := make(Nodes, 0)
	for _, n := range g.Nodes {
		if strings.Contains(n.Info.Name, name) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Total is the sum of flat weights, i.e. the weight of every sample in the graph.
func (g Graph) Total() int64 {
	var total int64
	for _, n := range g.Nodes {
		total += n.Flat
	}
	return total
}

// SelectNodesForGraph drops nodes without weight and sorts the rest.
func SelectNodesForGraph(nodes Nodes) *Graph {
	gNodes := make(Nodes, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Cum == 0 && n.Flat == 0 {
			continue
		}
		gNodes = append(gNodes, n)
	}
	sort.Slice(gNodes, func(i, j int) bool {
		l, r := gNodes[i], gNodes[j]
		if l.Cum != r.Cum {
			return l.Cum > r.Cum
		}
		if l.Flat != r.Flat {
			return l.Flat > r.Flat
		}
		if l.Info.Name != r.Info.Name {
			return l.Info.Name < r.Info.Name
		}
		return l.Info.File < r.Info.File
	})
	return &Graph{gNodes}
}

type Node struct {
	Info      NodeInfo
	Flat, Cum int64
	In, Out   map[*Node]*Edge
}

// Recursive reports whether the function was seen calling itself.
func (n *Node) Recursive() bool {
	_, ok := n.Out[n]
	return ok
}

func (n *Node) addEdge(dest *Node, w int64) {
	if e, ok := n.Out[dest]; ok {
		e.Weight += w
		return
	}
	e := &Edge{Src: n, Dest: dest, Weight: w}
	n.Out[dest] = e
	dest.In[n] = e
}

type Edge struct {
	Src, Dest *Node
	Weight    int64
}

type NodeInfo struct {
	Name, File string
}

func nodeInfo(l *profile.Location, line profile.Line) NodeInfo {
	if line.Function == nil {
		// unsymbolized, fall back to the mapping
		if l.Mapping != nil && l.Mapping.File != "" {
			return NodeInfo{Name: filepath.Base(l.Mapping.File)}
		}
		return NodeInfo{Name: "<unknown>"}
	}
	ni := NodeInfo{Name: line.Function.Name}
	if fname := line.Function.Filename; fname != "" {
		ni.File = filepath.Clean(fname)
	}
	return ni
}

type NodeMap map[NodeInfo]*Node

func (nm NodeMap) FindOrInsertNode(info NodeInfo) *Node {
	if n, ok := nm[info]; ok {
		return n
	}
	n := &Node{
		Info: info,
		In:   make(map[*Node]*Edge),
		Out:  make(map[*Node]*Edge),
	}
	nm[info] = n
	return n
}

func (nm NodeMap) Nodes() Nodes {
	nodes := make(Nodes, 0, len(nm))
	for _, n := range nm {
		nodes = append(nodes, n)
	}
	return nodes
}
