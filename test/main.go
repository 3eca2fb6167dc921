package main

import (
	"fmt"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangetable/pkg/interval"
	"github.com/henderiw/rangetable/pkg/iptable"
	"github.com/henderiw/rangetable/pkg/rangemap"
	"github.com/henderiw/rangetable/pkg/rangeset"
	"github.com/henderiw/rangetable/pkg/span"
	"github.com/henderiw/rangetable/pkg/spantable"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

func main() {
	s := rangeset.New[int]()
	for _, r := range [][2]int{{1, 3}, {5, 7}, {2, 6}} {
		rng, err := interval.Closed(r[0], r[1])
		if err != nil {
			panic(err)
		}
		s.Add(rng)
	}
	fmt.Println("set", s.String())
	fmt.Println("contains 4", s.Contains(4))

	hole, err := interval.Open(2, 5)
	if err != nil {
		panic(err)
	}
	s.Remove(hole)
	fmt.Println("after remove", s.String())

	q := interval.Single(4)
	closest, ok := rangeset.Closest(s, q, func(a, b int) int { return b - a })
	fmt.Println("closest to 4", closest.String(), ok)

	m := rangemap.New[int, string]()
	base, err := interval.Closed(1, 10)
	if err != nil {
		panic(err)
	}
	m.Put(base, "base")
	mid, err := interval.Closed(4, 6)
	if err != nil {
		panic(err)
	}
	m.Put(mid, "override")
	fmt.Println("map", m.String())
	for r, v := range m.All() {
		fmt.Println("entry", r.String(), v)
	}

	st, err := spantable.New(40)
	if err != nil {
		panic(err)
	}
	for _, v := range []struct {
		start, end int
		labels     map[string]string
	}{
		{start: 0, end: 3, labels: map[string]string{"pos": "det"}},
		{start: 4, end: 9, labels: map[string]string{"pos": "adj"}},
		{start: 10, end: 15, labels: map[string]string{"pos": "noun"}},
	} {
		sp, err := span.New(v.start, v.end)
		if err != nil {
			panic(err)
		}
		if err := st.Annotate(sp, v.labels); err != nil {
			panic(err)
		}
	}
	ls, err := getLabelSelector(map[string]string{"pos": "adj"})
	if err != nil {
		panic(err)
	}
	for _, a := range st.GetByLabel(ls) {
		fmt.Println("annotation by label", a.String())
	}

	ipRange, err := netipx.ParseIPRange("10.0.0.10-10.0.0.200")
	if err != nil {
		panic(err)
	}
	ipt, err := iptable.New(ipRange.From(), ipRange.To())
	if err != nil {
		panic(err)
	}
	if err := ipt.Claim("10.0.0.16/28", table.Route{}); err != nil {
		panic(err)
	}
	if err := ipt.ClaimRange("10.0.0.100-10.0.0.120", table.Route{}); err != nil {
		panic(err)
	}
	free, err := ipt.FindFree()
	if err != nil {
		panic(err)
	}
	fmt.Println("free", free.String())
	fmt.Println("covered", ipt.Covered().String())
}

func getLabelSelector(l map[string]string) (labels.Selector, error) {
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		if err != nil {
			return nil, err
		}
		fullselector = fullselector.Add(*req)
	}
	return fullselector, nil
}
