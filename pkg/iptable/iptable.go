// Package iptable tracks claimed IP ranges inside an address range.
// Whole prefixes are stored as single extents in a rangemap keyed by
// the address offset from the start of the range, so claims, releases
// and lookups stay proportional to the number of claimed extents rather
// than the number of addresses.
package iptable

import (
	"fmt"
	"math/big"
	"net/netip"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangetable/pkg/interval"
	"github.com/henderiw/rangetable/pkg/rangemap"
	"github.com/henderiw/rangetable/pkg/rangeset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPTable interface {
	Claim(prefix string, d table.Route) error
	ClaimRange(ipRange string, d table.Route) error
	Release(prefix string) error
	ReleaseRange(ipRange string) error

	Get(addr string) (table.Route, error)

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
	Covered() *rangeset.RangeSet[int64]
}

func New(from, to netip.Addr) (IPTable, error) {
	if !from.IsValid() || !to.IsValid() || to.Less(from) {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from.String(), to.String())
	}
	return &ipTable{
		m:       new(sync.RWMutex),
		entries: rangemap.New[int64, table.Route](),
		covered: rangeset.New[int64](),
		ipRange: netipx.IPRangeFrom(from, to),
	}, nil
}

type ipTable struct {
	m       *sync.RWMutex
	entries *rangemap.RangeMap[int64, table.Route]
	// covered mirrors the claimed extents in coalesced form for
	// overlap checks and free-address search
	covered *rangeset.RangeSet[int64]
	ipRange netipx.IPRange
}

func (r *ipTable) Claim(prefix string, d table.Route) error {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.validatePrefix(prefix)
	if err != nil {
		return err
	}
	return r.claim(rng, d)
}

func (r *ipTable) ClaimRange(ipRange string, d table.Route) error {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.validateRange(ipRange)
	if err != nil {
		return err
	}
	return r.claim(rng, d)
}

func (r *ipTable) claim(rng interval.Range[int64], d table.Route) error {
	if r.covered.Intersects(rng) {
		return fmt.Errorf("claim failed, range %s is already claimed", rng.String())
	}
	r.entries.Put(rng, d)
	r.covered.Add(rng)
	return nil
}

func (r *ipTable) Release(prefix string) error {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.validatePrefix(prefix)
	if err != nil {
		return err
	}
	r.entries.Remove(rng)
	r.covered.Remove(rng)
	return nil
}

func (r *ipTable) ReleaseRange(ipRange string) error {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.validateRange(ipRange)
	if err != nil {
		return err
	}
	r.entries.Remove(rng)
	r.covered.Remove(rng)
	return nil
}

func (r *ipTable) Get(addr string) (table.Route, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	route, ok := r.entries.Get(calculateIndex(claimIP, r.ipRange.From()))
	if !ok {
		return table.Route{}, fmt.Errorf("no match found for: %s", addr)
	}
	return route, nil
}

func (r *ipTable) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Len()
}

func (r *ipTable) Has(addr string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	_, ok := r.entries.Get(calculateIndex(claimIP, r.ipRange.From()))
	return ok
}

func (r *ipTable) IsFree(addr string) bool {
	return !r.Has(addr)
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var candidate int64
	for _, rng := range r.covered.Ranges() {
		if !rng.Contains(candidate) {
			break
		}
		candidate = rng.UpperEndpoint()
		if rng.Upper().Kind() == interval.KindClosed {
			candidate++
		}
	}
	if candidate > calculateIndex(r.ipRange.To(), r.ipRange.From()) {
		return netip.Addr{}, fmt.Errorf("no free address found")
	}
	return calculateIPFromIndex(r.ipRange.From(), candidate), nil
}

func (r *ipTable) GetAll() table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.entries.All() {
		routes = append(routes, route)
	}
	return routes
}

func (r *ipTable) GetByLabel(selector labels.Selector) table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.entries.All() {
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func (r *ipTable) Covered() *rangeset.RangeSet[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.covered.Clone()
}

func (r *ipTable) validatePrefix(prefix string) (interval.Range[int64], error) {
	p, err := netip.ParsePrefix(prefix)
	if err != nil {
		return interval.Range[int64]{}, fmt.Errorf("prefix %s is invalid", prefix)
	}
	rng := netipx.RangeOfPrefix(p.Masked())
	return r.indexRange(rng.From(), rng.To())
}

func (r *ipTable) validateRange(ipRange string) (interval.Range[int64], error) {
	rng, err := netipx.ParseIPRange(ipRange)
	if err != nil {
		return interval.Range[int64]{}, fmt.Errorf("ip range %s is invalid", ipRange)
	}
	return r.indexRange(rng.From(), rng.To())
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

func (r *ipTable) indexRange(from, to netip.Addr) (interval.Range[int64], error) {
	if !r.ipRange.Contains(from) || !r.ipRange.Contains(to) {
		return interval.Range[int64]{}, fmt.Errorf("range from %s to %s, does not fit in the range from %s to %s",
			from.String(), to.String(), r.ipRange.From().String(), r.ipRange.To().String())
	}
	return interval.Closed(calculateIndex(from, r.ipRange.From()), calculateIndex(to, r.ipRange.From()))
}

func calculateIndex(ip, start netip.Addr) int64 {
	return new(big.Int).Sub(ipToInt(ip), ipToInt(start)).Int64()
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	ipInt := new(big.Int)
	ipInt.SetBytes(bytes[:])
	return ipInt
}

func calculateIPFromIndex(startIP netip.Addr, id int64) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(id))
	ipBytes := ipInt.Bytes()

	if len(ipBytes) < 16 {
		paddedBytes := make([]byte, 16-len(ipBytes))
		ipBytes = append(paddedBytes, ipBytes...)
	}

	var ip16 [16]byte
	copy(ip16[:], ipBytes)
	addr := netip.AddrFrom16(ip16)
	if startIP.Is4() {
		return addr.Unmap()
	}
	return addr
}
