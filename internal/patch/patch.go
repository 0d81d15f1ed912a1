// Package patch builds the final patch artifact from a completed
// placement and can verify a previously-built artifact still matches it.
// It plays the role the teacher's rom.go Mutate/Update/Verify trio
// plays for a Game Boy Color ROM, adapted to a tagged-tree archive
// rather than direct byte-offset mutation, since this spec's target
// format is addressed by course/scene/index rather than a flat memory
// map.
package patch

import (
	"crypto/sha1"
	"fmt"

	"github.com/lorule/randomizer/internal/archive"
	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/fill"
)

// locationKey turns a check's location-info into the flat string the
// archive container keys its root map by, in the same
// course/scene[index] shape original_source's region tables address
// checks with.
func locationKey(loc *check.LocationInfo) string {
	return fmt.Sprintf("%s/%s[%d]", loc.Course, loc.Scene, loc.Index)
}

// logger is the minimal logging surface Patcher needs; satisfied by
// *logrus.Entry.
type logger interface {
	Infof(format string, args ...interface{})
}

// Patcher turns a completed fill result into patch bytes and can later
// confirm a given byte blob still encodes that same result.
type Patcher struct {
	log logger
}

// New returns a Patcher that logs through log (nil is fine; Build and
// Verify become silent).
func New(log logger) *Patcher {
	return &Patcher{log: log}
}

// Build serializes results into the archive container format: a single
// root map keyed by each check's location-info, each value the placed
// item's tag. It returns the encoded bytes and their sha1 checksum, the
// same pairing the teacher's Mutate returns for a mutated ROM.
func (p *Patcher) Build(results []fill.Result) ([]byte, [sha1.Size]byte, error) {
	root := archive.NewMap()
	for _, r := range results {
		if r.Location == nil {
			return nil, [sha1.Size]byte{}, fmt.Errorf("patch: build: check %q carries no location info", r.Check)
		}
		root.Set(locationKey(r.Location), archive.String(string(r.Item)))
	}
	encoded, err := archive.Encode(root)
	if err != nil {
		return nil, [sha1.Size]byte{}, fmt.Errorf("patch: build: %w", err)
	}
	sum := sha1.Sum(encoded)
	if p.log != nil {
		p.log.Infof("patch built: %d placements, checksum %x", len(results), sum)
	}
	return encoded, sum, nil
}

// Verify decodes data and confirms every one of results is present with
// its placed item, returning one error per mismatch — mirroring the
// teacher's Verify, which collects every mismatch rather than stopping
// at the first.
func (p *Patcher) Verify(data []byte, results []fill.Result) []error {
	root, err := archive.Decode(data)
	if err != nil {
		return []error{fmt.Errorf("patch: verify: %w", err)}
	}

	var errs []error
	for _, r := range results {
		if r.Location == nil {
			errs = append(errs, fmt.Errorf("patch: verify: check %q carries no location info", r.Check))
			continue
		}
		key := locationKey(r.Location)
		node, ok := root.Get(key)
		if !ok {
			errs = append(errs, fmt.Errorf("patch: verify: check %q (%s) missing from patch data", r.Check, key))
			continue
		}
		if node.Kind != archive.KindString || node.Str != string(r.Item) {
			errs = append(errs, fmt.Errorf("patch: verify: check %q (%s) has %q, want %q", r.Check, key, node.Str, r.Item))
		}
	}
	return errs
}
