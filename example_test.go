package locidx_test

import (
	"fmt"

	"github.com/nearedge/locidx"
	"github.com/nearedge/locidx/graph"
)

func Example() {
	g := graph.NewMemGraph()
	n0 := g.AddNode(51.5007, -0.1246)
	n1 := g.AddNode(51.5033, -0.1195)
	g.AddEdge(n0, n1, nil)

	idx, err := locidx.New(g, locidx.WithMinResolutionInMeter(25))
	if err != nil {
		panic(err)
	}
	defer idx.Close()

	if err := idx.Prepare(); err != nil {
		panic(err)
	}

	snap, err := idx.FindClosest(51.502, -0.122, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(snap.Valid(), snap.Kind)
	// Output: true EDGE
}
